package models

import (
	"errors"
	"time"
)

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleTeacher UserRole = "teacher"
)

// User is the registered account profile. Subject is the identity-provider
// user id; exactly one row exists per subject, email is globally unique.
type User struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Role        UserRole  `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var (
	ErrSubjectRequired = errors.New("subject required")
	ErrEmailRequired   = errors.New("email required")
)

// Normalize applies defaults and checks required fields before the record
// hits the store.
func (u *User) Normalize() error {
	if u.Subject == "" {
		return ErrSubjectRequired
	}
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.Role == "" {
		u.Role = UserRoleStudent
	}
	return nil
}
