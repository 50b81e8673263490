package domain

import "time"

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Session is the authenticated-identity-plus-credential state for one user.
// Identity and Credential are set and cleared together; a Session with only
// one half populated never exists.
type Session struct {
	Identity   *User
	Credential string
}

// Authenticated reports whether the session holds a live identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Identity != nil && s.Credential != ""
}
