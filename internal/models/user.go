package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. A user may hold a web login (email), a bot
// identity, or both after accounts are linked.
type User struct {
	ID        int       `json:"id"`
	Login     string    `json:"login"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	BotID     *int64    `json:"bot_id,omitempty"`
	BotName   *string   `json:"bot_name,omitempty"`
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether the plaintext password matches the stored
// hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
