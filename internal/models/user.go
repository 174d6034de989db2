package models

import "time"

// User is an account record keyed by username. Email and phone number are
// checked for uniqueness at registration time; the indexes are a backstop,
// not the gate.
type User struct {
	Username          string    `gorm:"primaryKey" json:"username"`
	FName             string    `json:"fName"`
	LName             string    `json:"lName"`
	Email             string    `gorm:"uniqueIndex" json:"email"`
	PhoneNumber       string    `gorm:"uniqueIndex" json:"phoneNumber"`
	PasswordHash      string    `json:"-"`
	Verified          bool      `json:"verified"`
	VerificationToken *string   `json:"verificationToken"`
	IsAdmin           bool      `json:"isAdmin"`
	CreatedAt         time.Time `json:"createdAt"`
}
