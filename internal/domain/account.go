package domain

import "time"

// Account represents a registered user keyed by email.
type Account struct {
	ID        int64
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
}
