package domain

import "time"

type User struct {
	ID           string // ULID
	Username     string
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
