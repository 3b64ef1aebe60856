package domain

import "regexp"

type (
	// Role is an account role.
	Role string
	// PaymentStatus is a parcel payment status.
	PaymentStatus string
	// DeliveryStatus is a parcel delivery status.
	DeliveryStatus string
	// ApplicationStatus is a rider application status.
	ApplicationStatus string
	// WorkStatus is a rider work availability status.
	WorkStatus string
)

// List of account roles
const (
	RoleUser  Role = "user"
	RoleRider Role = "rider"
	RoleAdmin Role = "admin"
)

// List of parcel payment statuses
const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// DeliveryPendingPickup is the only delivery status assigned in this service;
// downstream states belong to the dispatch system.
const DeliveryPendingPickup DeliveryStatus = "pending-pickup"

// List of rider application statuses
const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// WorkAvailable marks an approved rider as ready for assignments.
const WorkAvailable WorkStatus = "available"

var allowedRoles = [...]Role{RoleUser, RoleRider, RoleAdmin}

var allowedDecisions = [...]ApplicationStatus{ApplicationApproved, ApplicationRejected}

// Valid checks if the Role is valid.
func (r Role) Valid() bool {
	for _, v := range allowedRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Decision reports whether the status is a terminal administrator decision.
func (s ApplicationStatus) Decision() bool {
	for _, v := range allowedDecisions {
		if s == v {
			return true
		}
	}
	return false
}

// reEmail keeps the check loose on purpose: the authoritative identity comes
// from the token verifier, this only rejects obvious garbage.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the email format.
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}
