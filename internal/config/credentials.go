package config

import (
	"cmp"
	"os"
)

type Credentials struct {
	Username string
	Password string
}

// NewCredentialsFromEnv reads the trading account credentials. The backend
// ships with a seeded sandbox account, used as the fallback.
func NewCredentialsFromEnv() Credentials {
	return Credentials{
		Username: cmp.Or(os.Getenv("GAMESTOCK_USERNAME"), "test_trader"),
		Password: cmp.Or(os.Getenv("GAMESTOCK_PASSWORD"), "password123"),
	}
}
