package models

// Session is the authenticated operator context. It has no expiry of its
// own; an API 401 is what ends it.
type Session struct {
	Token         string
	UserID        string
	Name          string
	Phone         string
	ProfileImage  string
	AccountNumber string
	IsVerified    bool
	IsAdmin       bool
}

// Credentials is the login request body.
type Credentials struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// LoginResponse is the body returned by POST /user/login.
type LoginResponse struct {
	Token             string `json:"token"`
	UserID            string `json:"userId"`
	UserName          string `json:"userName"`
	UserPhone         string `json:"userPhone"`
	UserProfileImage  string `json:"userProfileImage"`
	UserAccountNumber string `json:"userAccountNumber"`
	UserIsVerified    bool   `json:"userIsVerified"`
	UserIsAdmin       bool   `json:"userIsAdmin"`
}

// Session converts the login response into the persisted Session.
func (r LoginResponse) Session() Session {
	return Session{
		Token:         r.Token,
		UserID:        r.UserID,
		Name:          r.UserName,
		Phone:         r.UserPhone,
		ProfileImage:  r.UserProfileImage,
		AccountNumber: r.UserAccountNumber,
		IsVerified:    r.UserIsVerified,
		IsAdmin:       r.UserIsAdmin,
	}
}
