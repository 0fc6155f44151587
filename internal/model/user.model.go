package model

// User is a dashboard login. Password holds the bcrypt hash, never the
// plaintext; it is stripped from every JSON surface.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

func (User) TableName() string { return "users" }
