package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zapshift/parcel-service/internal/domain"
)

func TestRole_Valid(t *testing.T) {
	t.Parallel()

	require.True(t, domain.RoleUser.Valid())
	require.True(t, domain.RoleRider.Valid())
	require.True(t, domain.RoleAdmin.Valid())
	require.False(t, domain.Role("").Valid())
	require.False(t, domain.Role("superuser").Valid())
}

func TestApplicationStatus_Decision(t *testing.T) {
	t.Parallel()

	require.True(t, domain.ApplicationApproved.Decision())
	require.True(t, domain.ApplicationRejected.Decision())
	require.False(t, domain.ApplicationPending.Decision())
	require.False(t, domain.ApplicationStatus("done").Decision())
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"x+tag@y.co",
	}
	for _, s := range valid {
		require.True(t, domain.ValidateEmail(s), "expected valid: %s", s)
	}

	invalid := []string{
		"",
		"plain",
		"no@tld",
		"two@@example.com",
		"spaces in@example.com",
		"@example.com",
	}
	for _, s := range invalid {
		require.False(t, domain.ValidateEmail(s), "expected invalid: %s", s)
	}
}
