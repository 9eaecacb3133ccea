// models/response.go
package models

// Response is the JSON envelope shared by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// DoctorListResponse wraps the admin pending/approved doctor listings
type DoctorListResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Doctors []Account `json:"doctors"`
}

// OverviewResponse wraps the dashboard statistics
type OverviewResponse struct {
	Success bool          `json:"success"`
	Stats   OverviewStats `json:"stats"`
}
