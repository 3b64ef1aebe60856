package domain

import "time"

// RiderApplication represents a request to become a delivery courier.
// WorkStatus is set only when the application is approved.
type RiderApplication struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Region     string
	District   string
	Status     ApplicationStatus
	WorkStatus WorkStatus
	CreatedAt  time.Time
}

// RiderDecision carries an administrator decision on an application.
type RiderDecision struct {
	ID     int64
	Status ApplicationStatus
	Email  string
}
