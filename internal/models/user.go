package models

// User is an account able to post and vote on links.
type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // don’t expose hash
}

// AuthPayload pairs a freshly issued session token with its user.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
