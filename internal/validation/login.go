package validation

import (
	"errors"
	"strings"
)

// ValidateLogin checks the user-chosen login name.
func ValidateLogin(login string) error {
	login = strings.TrimSpace(login)

	if login == "" {
		return errors.New("login is required")
	}

	if len(login) > 48 {
		return errors.New("login must not exceed 48 characters")
	}

	return nil
}
