package session

import (
	"strconv"

	"github.com/dmitrijs2005/forsa-manager/internal/client/models"
)

// Storage keys of the persisted Session. The set is written and removed as
// a whole.
const (
	KeyToken         = "token"
	KeyUserID        = "userId"
	KeyName          = "userName"
	KeyPhone         = "userPhone"
	KeyProfileImage  = "userProfileImage"
	KeyAccountNumber = "userAccountNumber"
	KeyIsVerified    = "userIsVerified"
	KeyIsAdmin       = "userIsAdmin"
)

var Keys = []string{
	KeyToken, KeyUserID, KeyName, KeyPhone,
	KeyProfileImage, KeyAccountNumber, KeyIsVerified, KeyIsAdmin,
}

func encode(s models.Session) map[string][]byte {
	return map[string][]byte{
		KeyToken:         []byte(s.Token),
		KeyUserID:        []byte(s.UserID),
		KeyName:          []byte(s.Name),
		KeyPhone:         []byte(s.Phone),
		KeyProfileImage:  []byte(s.ProfileImage),
		KeyAccountNumber: []byte(s.AccountNumber),
		KeyIsVerified:    []byte(strconv.FormatBool(s.IsVerified)),
		KeyIsAdmin:       []byte(strconv.FormatBool(s.IsAdmin)),
	}
}

// decode rebuilds a Session; ok is false when no token is stored.
func decode(values map[string][]byte) (s models.Session, ok bool) {
	s.Token = string(values[KeyToken])
	if s.Token == "" {
		return models.Session{}, false
	}
	s.UserID = string(values[KeyUserID])
	s.Name = string(values[KeyName])
	s.Phone = string(values[KeyPhone])
	s.ProfileImage = string(values[KeyProfileImage])
	s.AccountNumber = string(values[KeyAccountNumber])
	s.IsVerified, _ = strconv.ParseBool(string(values[KeyIsVerified]))
	s.IsAdmin, _ = strconv.ParseBool(string(values[KeyIsAdmin]))
	return s, true
}
