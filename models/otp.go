package models

import (
	"time"
)

// PendingOTP represents the one outstanding verification code for an email.
// Issuing a new code for the same email overwrites the previous record.
type PendingOTP struct {
	Email     string      `json:"email" bson:"email"`
	Kind      AccountKind `json:"kind" bson:"kind"`
	Code      string      `json:"code" bson:"code"`
	ExpiresAt time.Time   `json:"expiresAt" bson:"expiresAt"`
}

// Expired reports whether the code is past its validity window
func (o *PendingOTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
