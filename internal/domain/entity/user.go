package entity

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash; the raw secret never reaches this struct.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string
}

// PublicUser is the projection safe to return to callers (no hash).
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public strips the credential fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
