package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// ContactMethods lists the channels a vehicle owner agreed to be reached on.
// An owner with every flag false is not contactable and their vehicles cannot
// be revealed.
type ContactMethods struct {
	Phone    bool `json:"phone" bson:"phone"`
	SMS      bool `json:"sms" bson:"sms"`
	WhatsApp bool `json:"whatsapp" bson:"whatsapp"`
	Email    bool `json:"email" bson:"email"`
}

func (c ContactMethods) AnyEnabled() bool {
	return c.Phone || c.SMS || c.WhatsApp || c.Email
}

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName      string             `json:"first_name" bson:"first_name" validate:"required,min=1,max=50"`
	LastName       string             `json:"last_name" bson:"last_name"`
	Phone          string             `json:"phone" bson:"phone" validate:"required"`
	Email          string             `json:"email" bson:"email" validate:"omitempty,email"`
	ContactMethods ContactMethods     `json:"contact_methods" bson:"contact_methods"`
	Status         UserStatus         `json:"status" bson:"status" default:"active"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// MaskedName hides the owner's identity in search results: the first name is
// kept, the last name is reduced to its initial. Single-word names are
// returned unchanged.
func (u *User) MaskedName() string {
	last := strings.TrimSpace(u.LastName)
	if last == "" {
		return u.FirstName
	}
	initial, _ := utf8.DecodeRuneInString(last)
	return u.FirstName + " " + strings.ToUpper(string(initial)) + "."
}

func (u *User) IsContactable() bool {
	return u.Status == UserStatusActive && u.ContactMethods.AnyEnabled()
}
