package models

import (
	"encoding/json"
	"time"
)

// AdImageSlots is how many pictures an ad can carry.
const AdImageSlots = 6

// Ad is an advertisement awaiting moderation. Pic1..Pic6 hold optional
// base64 image payloads.
type Ad struct {
	ID              string `json:"_id"`
	AdTitle         string `json:"adTitle"`
	Price           string `json:"price"`
	CurrencyName    string `json:"currencyName"`
	Pic1            string `json:"pic1,omitempty"`
	Pic2            string `json:"pic2,omitempty"`
	Pic3            string `json:"pic3,omitempty"`
	Pic4            string `json:"pic4,omitempty"`
	Pic5            string `json:"pic5,omitempty"`
	Pic6            string `json:"pic6,omitempty"`
	UserName        string `json:"userName"`
	UserPhone       string `json:"userPhone"`
	CategoryName    string `json:"categoryName"`
	SubCategoryName string `json:"subCategoryName"`
	CityName        string `json:"cityName"`
	RegionName      string `json:"regionName"`
	Description     string `json:"description"`
	CreateDate      string `json:"createDate"`
}

func (a Ad) ItemID() string { return a.ID }

// Pictures returns the six image slots in order; empty strings mark
// missing pictures.
func (a Ad) Pictures() [AdImageSlots]string {
	return [AdImageSlots]string{a.Pic1, a.Pic2, a.Pic3, a.Pic4, a.Pic5, a.Pic6}
}

// PictureCount is the number of non-empty image slots.
func (a Ad) PictureCount() int {
	n := 0
	for _, p := range a.Pictures() {
		if p != "" {
			n++
		}
	}
	return n
}

// Created parses CreateDate. ok is false when the date is absent or not
// RFC 3339.
func (a Ad) Created() (t time.Time, ok bool) {
	if a.CreateDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, a.CreateDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (a *Ad) UnmarshalJSON(b []byte) error {
	type plain Ad
	aux := struct {
		*plain
		MongoID   flexString `json:"_id"`
		PlainID   flexString `json:"id"`
		Price     flexString `json:"price"`
		UserPhone flexString `json:"userPhone"`
	}{plain: (*plain)(a)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	a.ID = firstID(aux.MongoID, aux.PlainID)
	a.Price = string(aux.Price)
	a.UserPhone = string(aux.UserPhone)
	return nil
}
