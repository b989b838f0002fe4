package models

import (
	"encoding/json"
	"strings"
)

type User struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	IsVerified  bool   `json:"isVerified"`
	IsSpecial   bool   `json:"isSpecial"`
}

func (u User) ItemID() string { return u.ID }

// FullName is "first last" with surrounding blanks removed.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		*plain
		MongoID     flexString `json:"_id"`
		PlainID     flexString `json:"id"`
		PhoneNumber flexString `json:"phoneNumber"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	u.ID = firstID(aux.MongoID, aux.PlainID)
	u.PhoneNumber = string(aux.PhoneNumber)
	return nil
}
