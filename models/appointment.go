package models

import (
	"time"
)

// Appointment model
type Appointment struct {
	ID           string    `json:"id" bson:"_id"`
	PatientEmail string    `json:"patientEmail" bson:"patientEmail"`
	DoctorEmail  string    `json:"doctorEmail" bson:"doctorEmail"`
	Date         string    `json:"date" bson:"date"`
	TimeSlot     string    `json:"time" bson:"timeSlot"`
	Reason       string    `json:"reason,omitempty" bson:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// AppointmentRequest model
type AppointmentRequest struct {
	PatientEmail string `json:"patientEmail" validate:"required,email"`
	DoctorEmail  string `json:"doctorEmail" validate:"required,email"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Reason       string `json:"reason,omitempty"`
}

// AppointmentListResponse wraps appointment listings
type AppointmentListResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message,omitempty"`
	Appointments []Appointment `json:"appointments"`
}
