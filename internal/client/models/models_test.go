package models

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_IdentifierSpellings(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mongo id", `{"_id":"a1","firstName":"A"}`, "a1"},
		{"plain id", `{"id":"b2"}`, "b2"},
		{"both, _id wins", `{"_id":"a1","id":"b2"}`, "a1"},
		{"empty _id falls back", `{"_id":"","id":"b2"}`, "b2"},
		{"null _id falls back", `{"_id":null,"id":"b2"}`, "b2"},
		{"numeric id", `{"id":42}`, "42"},
		{"none", `{"firstName":"x"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.in), &u))
			assert.Equal(t, tt.want, u.ItemID())
		})
	}
}

func TestUser_DecodesFields(t *testing.T) {
	var u User
	in := `{"_id":"u1","firstName":"Ali","lastName":"Hassan","phoneNumber":9665550101,"isVerified":true,"isSpecial":false}`
	require.NoError(t, json.Unmarshal([]byte(in), &u))

	assert.Equal(t, User{ID: "u1", FirstName: "Ali", LastName: "Hassan", PhoneNumber: "9665550101", IsVerified: true}, u)
	assert.Equal(t, "Ali Hassan", u.FullName())
	assert.Equal(t, "Ali", User{FirstName: "Ali"}.FullName())
}

func TestUser_MarshalUsesMongoID(t *testing.T) {
	b, err := json.Marshal(User{ID: "u1"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"_id":"u1"`)
}

func TestAd_DecodeAndPictures(t *testing.T) {
	in := `{"id":"ad9","adTitle":"Bike","price":150,"currencyName":"SAR","pic1":"AAA","pic3":"CCC","createDate":"2026-01-02T03:04:05Z"}`
	var a Ad
	require.NoError(t, json.Unmarshal([]byte(in), &a))

	assert.Equal(t, "ad9", a.ItemID())
	assert.Equal(t, "150", a.Price)
	assert.Equal(t, [AdImageSlots]string{"AAA", "", "CCC", "", "", ""}, a.Pictures())
	assert.Equal(t, 2, a.PictureCount())

	ts, ok := a.Created()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), ts)

	_, ok = Ad{CreateDate: "yesterday"}.Created()
	assert.False(t, ok)
}

func TestAd_RejectsMalformed(t *testing.T) {
	var a Ad
	require.Error(t, json.Unmarshal([]byte(`{"price":{}}`), &a))
}

func TestDataURL(t *testing.T) {
	assert.Equal(t, "data:image/jpeg;base64,QUJD", DataURL("QUJD"))
	assert.Equal(t, "data:image/png;base64,QUJD", DataURL("data:image/png;base64,QUJD"))
	assert.Equal(t, "", DataURL(""))
}

func TestDecodeDataURL(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff}
	data, mt, err := DecodeDataURL(DataURL(base64.StdEncoding.EncodeToString(raw)))
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, "image/jpeg", mt)

	_, _, err = DecodeDataURL("QUJD")
	require.ErrorIs(t, err, ErrNotDataURL)

	_, _, err = DecodeDataURL("data:text/plain,hello")
	require.ErrorIs(t, err, ErrNotDataURL)

	_, _, err = DecodeDataURL("data:image/jpeg;base64,@@@")
	require.Error(t, err)
}

func TestImageRecord_ID(t *testing.T) {
	var r ImageRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"i1","content":"QUJD"}`), &r))
	assert.Equal(t, ImageRecord{ID: "i1", Content: "QUJD"}, r)
}

func TestDashboard_Complete(t *testing.T) {
	var d Dashboard
	require.NoError(t, json.Unmarshal([]byte(`{"userCount":3,"approvedAdsCount":0}`), &d))
	assert.False(t, d.Complete())
	assert.Equal(t, "3", CounterText(d.UserCount))
	assert.Equal(t, "-", CounterText(d.NotApprovedAdsCount))
	assert.Equal(t, "0", CounterText(d.ApprovedAdsCount))

	require.NoError(t, json.Unmarshal([]byte(`{"userCount":3,"approvedAdsCount":0,"notApprovedAdsCount":7}`), &d))
	assert.True(t, d.Complete())
}

func TestLoginResponse_Session(t *testing.T) {
	r := LoginResponse{Token: "t", UserID: "u", UserName: "Admin", UserPhone: "555", UserIsAdmin: true}
	assert.Equal(t, Session{Token: "t", UserID: "u", Name: "Admin", Phone: "555", IsAdmin: true}, r.Session())
}
