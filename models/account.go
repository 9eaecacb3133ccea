// models/account.go
package models

import (
	"time"
)

// AccountKind distinguishes the two portal account variants
type AccountKind string

const (
	KindPatient AccountKind = "patient"
	KindDoctor  AccountKind = "doctor"
)

// Account model for both patients and doctors, keyed by email
type Account struct {
	Email      string      `json:"email" bson:"email"`
	Kind       AccountKind `json:"kind" bson:"kind"`
	FirstName  string      `json:"firstName" bson:"firstName"`
	LastName   string      `json:"lastName" bson:"lastName"`
	Password   string      `json:"-" bson:"password"` // bcrypt hash, never serialized
	IsVerified bool        `json:"isVerified" bson:"isVerified"`
	// Doctor-only fields
	IsApproved      bool   `json:"isApproved,omitempty" bson:"isApproved,omitempty"`
	Specialization  string `json:"specialization,omitempty" bson:"specialization,omitempty"`
	ExperienceYears int    `json:"experienceYears,omitempty" bson:"experienceYears,omitempty"`
	ClinicName      string `json:"clinicName,omitempty" bson:"clinicName,omitempty"`
	RegistrationID  string `json:"registrationId,omitempty" bson:"registrationId,omitempty"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

// FullName returns the display name used in emails and login responses
func (a *Account) FullName() string {
	return a.FirstName + " " + a.LastName
}

// SignupRequest carries the fields shared by both signup variants
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	// Doctor signups only
	Specialization  string `json:"specialization,omitempty"`
	ExperienceYears int    `json:"experienceYears,omitempty"`
	ClinicName      string `json:"clinicName,omitempty"`
	RegistrationID  string `json:"registrationId,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTP      string `json:"otp,omitempty"`
}

// LoginResponse is the success payload for patient/doctor login
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}
