package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskedName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"first and last", User{FirstName: "Asha", LastName: "Sharma"}, "Asha S."},
		{"single word", User{FirstName: "Rihanna"}, "Rihanna"},
		{"lowercase last initial uppercased", User{FirstName: "Ravi", LastName: "kumar"}, "Ravi K."},
		{"short last name", User{FirstName: "Li", LastName: "X"}, "Li X."},
		{"multibyte last initial", User{FirstName: "Emre", LastName: "Öztürk"}, "Emre Ö."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.MaskedName())
		})
	}
}

func TestContactMethods(t *testing.T) {
	assert.False(t, ContactMethods{}.AnyEnabled())
	assert.True(t, ContactMethods{WhatsApp: true}.AnyEnabled())

	user := User{FirstName: "Asha", Status: UserStatusActive, ContactMethods: ContactMethods{Phone: true}}
	assert.True(t, user.IsContactable())

	user.Status = UserStatusSuspended
	assert.False(t, user.IsContactable())
}
