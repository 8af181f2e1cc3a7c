package model

import "time"

// Account is a login identity. Holds zero or more Characters.
type Account struct {
	AccountID    int64
	Username     string
	PasswordHash string // bcrypt verifier, see internal/persistence.HashPassword
	IsAdmin      bool
	LastLogin    time.Time
}

// MaxCharactersPerAccount bounds how many characters an account may own.
const MaxCharactersPerAccount = 4
