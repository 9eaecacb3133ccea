package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenemind/portal_backend/models"
)

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/api/admin/login", models.AdminLoginRequest{
		AdminID:  "admin1",
		Email:    "admin@portal.test",
		Password: "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.AdminLoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@portal.test", resp.Email)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	cases := []models.AdminLoginRequest{
		{AdminID: "admin1", Email: "admin@portal.test", Password: "wrong"},
		{AdminID: "someone", Email: "admin@portal.test", Password: "hunter2"},
		{AdminID: "admin1", Email: "other@portal.test", Password: "hunter2"},
	}
	for _, req := range cases {
		rec := env.postJSON(t, "/api/admin/login", req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid admin credentials", decodeResponse(t, rec).Message)
	}

	// Missing fields are a 400, not a 401
	rec := env.postJSON(t, "/api/admin/login", models.AdminLoginRequest{AdminID: "admin1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminDoctorListings(t *testing.T) {
	env := newTestEnv(t)

	env.signupDoctor(t, "doc@x.com")

	// Unverified doctors appear in neither list
	rec := env.get(t, "/api/admin/doctors/pending")
	require.Equal(t, http.StatusOK, rec.Code)
	var pending models.DoctorListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	assert.Empty(t, pending.Doctors)

	env.verify(t, "/api/doctor/verify-signup-otp", "doc@x.com")

	rec = env.get(t, "/api/admin/doctors/pending")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	require.Len(t, pending.Doctors, 1)
	assert.Equal(t, "doc@x.com", pending.Doctors[0].Email)
	assert.Equal(t, "Diagnostics", pending.Doctors[0].Specialization)

	rec = env.postJSON(t, "/api/admin/doctors/approve", models.AdminEmailRequest{Email: "doc@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Doctor approved", decodeResponse(t, rec).Message)

	rec = env.get(t, "/api/admin/doctors/pending")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pending))
	assert.Empty(t, pending.Doctors)

	var approved models.DoctorListResponse
	rec = env.get(t, "/api/admin/doctors/approved")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	require.Len(t, approved.Doctors, 1)
}

func TestApproveDoctorGuards(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/api/admin/doctors/approve", models.AdminEmailRequest{Email: "ghost@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Doctor not found", decodeResponse(t, rec).Message)

	env.signupDoctor(t, "doc@x.com")
	rec = env.postJSON(t, "/api/admin/doctors/approve", models.AdminEmailRequest{Email: "doc@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Doctor has not verified their email yet", decodeResponse(t, rec).Message)

	rec = env.postJSON(t, "/api/admin/doctors/approve", models.AdminEmailRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email is required", decodeResponse(t, rec).Message)
}

func TestRejectDoctorRemovesAccount(t *testing.T) {
	env := newTestEnv(t)

	env.signupDoctor(t, "doc@x.com")
	env.verify(t, "/api/doctor/verify-signup-otp", "doc@x.com")

	rec := env.postJSON(t, "/api/admin/doctors/reject", models.AdminEmailRequest{Email: "doc@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Doctor rejected and removed", decodeResponse(t, rec).Message)

	// Gone from the portal entirely
	loginRec := env.postJSON(t, "/api/doctor/login", models.LoginRequest{
		Email:    "doc@x.com",
		Password: "vicodin",
	})
	assert.Equal(t, http.StatusBadRequest, loginRec.Code)
	assert.Equal(t, "Invalid email or password", decodeResponse(t, loginRec).Message)

	rec = env.postJSON(t, "/api/admin/doctors/reject", models.AdminEmailRequest{Email: "doc@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Doctor not found", decodeResponse(t, rec).Message)
}

func TestAdminOverviewCounters(t *testing.T) {
	env := newTestEnv(t)

	env.signupPatient(t, "jane@x.com")
	env.verify(t, "/api/patient/verify-signup-otp", "jane@x.com")
	env.signupDoctor(t, "doc@x.com")
	env.verify(t, "/api/doctor/verify-signup-otp", "doc@x.com")
	env.signupDoctor(t, "doc2@x.com")

	rec := env.get(t, "/api/admin/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.OverviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Stats.TotalDoctors)
	assert.Equal(t, 1, resp.Stats.PendingDoctors)
	assert.Equal(t, 1, resp.Stats.TotalPatients)
	assert.Equal(t, 0, resp.Stats.TotalAppointments)
}
