package market

import (
	"encoding/base64"
	"fmt"
	"time"
)

var (
	firstNames = []string{"Ali", "Fatima", "Hassan", "Layla", "Omar", "Zeinab", "Karim", "Maya", "Rami", "Nour"}
	lastNames  = []string{"Haddad", "Khoury", "Saad", "Nassar", "Fares", "Mansour", "Aoun", "Daher"}
	categories = [][2]string{{"Vehicles", "Cars"}, {"Electronics", "Phones"}, {"Real Estate", "Apartments"}, {"Home", "Furniture"}, {"Sports", "Bikes"}}
	cities     = [][2]string{{"Beirut", "Beirut"}, {"Tripoli", "North"}, {"Sidon", "South"}, {"Zahle", "Bekaa"}, {"Jounieh", "Mount Lebanon"}}
)

// Seed describes the initial contents of a Market.
type Seed struct {
	AdminPhone    string
	AdminPassword string
	// MemberPhone and MemberPassword log in as a user without admin rights.
	MemberPhone    string
	MemberPassword string
	Users          int
	PendingAds     int
	ApprovedAds    int
}

// onePixel is a 1×1 JPEG used for seeded ad pictures.
var onePixel = base64.StdEncoding.EncodeToString([]byte{
	0xff, 0xd8, 0xff, 0xdb, 0x00, 0x43, 0x00, 0x08, 0x06, 0x06, 0x07, 0x06, 0x05, 0x08, 0x07, 0x07,
	0x07, 0x09, 0x09, 0x08, 0x0a, 0x0c, 0x14, 0x0d, 0x0c, 0x0b, 0x0b, 0x0c, 0x19, 0x12, 0x13, 0x0f,
	0xff, 0xd9,
})

// Populate fills m from s. Generated users have no password; only the
// admin and member accounts can log in.
func (m *Market) Populate(s Seed) error {
	if _, err := m.AddUser(User{
		FirstName: "Forsa", LastName: "Admin", PhoneNumber: s.AdminPhone,
		AccountNumber: "ACC-0001", IsVerified: true, IsAdmin: true,
	}, s.AdminPassword); err != nil {
		return err
	}
	if s.MemberPhone != "" {
		if _, err := m.AddUser(User{
			FirstName: "Regular", LastName: "Member", PhoneNumber: s.MemberPhone, IsVerified: true,
		}, s.MemberPassword); err != nil {
			return err
		}
	}

	for i := range s.Users {
		_, err := m.AddUser(User{
			FirstName:   firstNames[i%len(firstNames)],
			LastName:    lastNames[(i/len(firstNames))%len(lastNames)],
			PhoneNumber: fmt.Sprintf("+9617%07d", 1000+i),
			IsVerified:  i%3 != 0,
			IsSpecial:   i%17 == 0,
		}, "")
		if err != nil {
			return err
		}
	}

	start := m.now().Add(-time.Duration(s.PendingAds+s.ApprovedAds) * time.Hour)
	for i := range s.PendingAds + s.ApprovedAds {
		cat := categories[i%len(categories)]
		city := cities[i%len(cities)]
		ad := Ad{
			AdTitle:         fmt.Sprintf("%s #%d", cat[1], i+1),
			Price:           50 * (i + 1),
			CurrencyName:    "USD",
			UserName:        firstNames[i%len(firstNames)] + " " + lastNames[i%len(lastNames)],
			UserPhone:       fmt.Sprintf("+9617%07d", 1000+i),
			CategoryName:    cat[0],
			SubCategoryName: cat[1],
			CityName:        city[0],
			RegionName:      city[1],
			Description:     "Seeded listing for local testing.",
			CreateDate:      start.Add(time.Duration(i) * time.Hour).UTC().Format(time.RFC3339),
			Approved:        i >= s.PendingAds,
		}
		if i%2 == 0 {
			ad.Pic1 = onePixel
		}
		if i%4 == 0 {
			ad.Pic3 = "data:image/jpeg;base64," + onePixel
		}
		m.AddAd(ad)
	}
	return nil
}
