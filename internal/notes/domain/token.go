package domain

import "time"

// TokenPair is what sign-in and sign-up hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
}
