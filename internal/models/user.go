package models

// User is an employee credential record. Passwords are stored as bcrypt
// hashes; the plaintext never leaves the login request.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
}
