package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "user@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "too short", email: "a@b", wantErr: true},
		{name: "too long", email: strings.Repeat("a", 95) + "@ex.com", wantErr: true},
		{name: "no at sign", email: "user.example.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("short67"))
	assert.NoError(t, ValidatePassword("pw123456"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
}

func TestValidateLogin(t *testing.T) {
	assert.Error(t, ValidateLogin(""))
	assert.Error(t, ValidateLogin("   "))
	assert.NoError(t, ValidateLogin("alice"))
	assert.Error(t, ValidateLogin(strings.Repeat("a", 49)))
}
