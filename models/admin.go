package models

// Admin is the single portal administrator, seeded from environment at startup
type Admin struct {
	AdminID  string `json:"adminId" bson:"adminId"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"` // bcrypt hash
}

type AdminLoginRequest struct {
	AdminID  string `json:"adminId"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	Email   string `json:"email"`
}

// OverviewStats feeds the admin dashboard counters
type OverviewStats struct {
	TotalDoctors      int `json:"totalDoctors"`
	PendingDoctors    int `json:"pendingDoctors"`
	TotalPatients     int `json:"totalPatients"`
	TotalAppointments int `json:"totalAppointments"`
}

type AdminEmailRequest struct {
	Email string `json:"email"`
}
