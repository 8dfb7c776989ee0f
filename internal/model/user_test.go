package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Activate(t *testing.T) {
	user := &User{Status: UserStatusWaitingVerification}
	at := time.Now()

	user.Activate(at)

	assert.Equal(t, UserStatusActive, user.Status)
	require.NotNil(t, user.EmailVerifiedAt)
	assert.Equal(t, at, *user.EmailVerifiedAt)
}

func TestUser_Activate_AlreadyActive(t *testing.T) {
	verifiedAt := time.Now().Add(-24 * time.Hour)
	user := &User{Status: UserStatusActive, EmailVerifiedAt: &verifiedAt}

	user.Activate(time.Now())

	// A second activation must not move the verification timestamp.
	assert.Equal(t, UserStatusActive, user.Status)
	assert.Equal(t, verifiedAt, *user.EmailVerifiedAt)
}
