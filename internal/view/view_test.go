package view

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentaldesk/internal/app"
	"dentaldesk/internal/gateway"
	"dentaldesk/internal/models"
	"dentaldesk/internal/session"
	"dentaldesk/internal/stubapi"
)

func render(t *testing.T, s app.State) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s))
	return buf.String()
}

func doctorState() app.State {
	s := app.Initial()
	s = app.Reduce(s, app.LoggedIn{Session: models.Session{Token: "t", Role: models.RoleDoctor, UserID: "d1"}})
	s = app.Reduce(s, app.PatientsLoaded{Patients: []models.Patient{{ID: "p1", Name: "Ann Lee"}}})
	s = app.Reduce(s, app.AppointmentsLoaded{Appointments: []models.Appointment{
		{ID: "a1", PatientName: "Ann Lee", Reason: "Cleaning", Status: models.StatusPending},
		{ID: "a2", PatientName: "Bob", Reason: "Filling", Status: models.StatusConfirmed},
	}})
	s = app.Reduce(s, app.NotificationsLoaded{Notifications: []models.Notification{{ID: "n1"}, {ID: "n2", Read: true}}})
	return s
}

func TestCurrent(t *testing.T) {
	s := app.Initial()
	assert.Equal(t, app.ViewLogin, Current(s))

	s.View = app.ViewRegister
	assert.Equal(t, app.ViewRegister, Current(s))

	s.View = app.ViewDashboard
	assert.Equal(t, app.ViewLogin, Current(s), "dashboard needs a session")

	assert.Equal(t, app.ViewDashboard, Current(doctorState()))
}

func TestRenderAuth(t *testing.T) {
	s := app.Initial()
	s.AuthForm.Username = "pat1"
	s.AuthForm.Password = "secret"

	out := render(t, s)
	assert.Contains(t, out, "Welcome Back")
	assert.Contains(t, out, "******")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "Full Name")
	assert.Contains(t, out, "Don't have an account?")

	s.View = app.ViewRegister
	out = render(t, s)
	assert.Contains(t, out, "Create Your Account")
	assert.Contains(t, out, "Full Name")
	assert.Contains(t, out, "Role:      patient")
	assert.Contains(t, out, "Already have an account?")

	s.Busy = true
	assert.Contains(t, render(t, s), "Processing...")
}

func TestRenderDoctorDashboard(t *testing.T) {
	s := doctorState()
	s = app.Reduce(s, app.PatientSelected{ID: "p1"})
	s = app.Reduce(s, app.NoticeShown{Text: "Patient created successfully!"})

	out := render(t, s)
	assert.Contains(t, out, "DentalAI - Doctor Dashboard")
	assert.Contains(t, out, "1 new")
	assert.Contains(t, out, "Patients")
	assert.Contains(t, out, "confirm a1 | cancel a1")
	assert.NotContains(t, out, "confirm a2")
	assert.Contains(t, out, "AI Dental Assistant (Professional Mode)")
	assert.Contains(t, out, "Consulting about: Ann Lee")
	assert.Contains(t, out, "Select a patient for personalized consultation.")
	assert.Regexp(t, `\n>> Patient created successfully!\n$`, out)
}

func TestRenderPatientDashboard(t *testing.T) {
	s := app.Initial()
	s = app.Reduce(s, app.LoggedIn{Session: models.Session{Token: "t", Role: models.RolePatient, UserID: "u1"}})

	out := render(t, s)
	assert.Contains(t, out, "DentalAI - Patient Dashboard")
	assert.NotContains(t, out, "new]")
	assert.Contains(t, out, "Book Appointment")
	assert.Contains(t, out, "My Appointments")
	assert.Contains(t, out, "No appointments yet. Book your first appointment!")
	assert.Contains(t, out, "AI Dental Assistant (Patient Mode)")
	assert.NotContains(t, out, "Consulting about")
	assert.NotContains(t, out, "\nPatients\n")

	s = app.Reduce(s, app.AppointmentsLoaded{Appointments: []models.Appointment{
		{ID: "a1", Date: "2026-11-01", Time: "09:00", Reason: "Cleaning", Status: models.StatusConfirmed, Notes: "Status updated to confirmed by doctor"},
		{ID: "a2", Date: "2026-11-02", Time: "10:00", Reason: "Checkup", Status: models.StatusPending},
	}})
	out = render(t, s)
	assert.Contains(t, out, "NOTES")
	assert.Contains(t, out, "Status updated to confirmed by doctor")
	assert.NotContains(t, out, "confirm a2")

	ts := time.Date(2026, 10, 14, 14, 3, 9, 0, time.Local)
	s = app.Reduce(s, app.ChatAppended{Message: models.ChatMessage{ID: "m1", Type: models.MessageUser, Content: "hi", Timestamp: ts}})
	s = app.Reduce(s, app.AppointmentFormToggled{Open: true})
	out = render(t, s)
	assert.Contains(t, out, "[14:03:09] You: hi")
	assert.Contains(t, out, "reason=")
	assert.NotContains(t, out, "Welcome to your AI Dental Assistant!")
}

func loginAs(t *testing.T, srvURL, user, pass string) *app.Dashboard {
	t.Helper()
	sessions := session.NewStore(session.NewMemoryStorage())
	d := app.NewDashboard(gateway.New(srvURL, sessions), sessions)
	require.NoError(t, d.EditAuth("username", user))
	require.NoError(t, d.EditAuth("password", pass))
	require.NoError(t, d.Login(context.Background()))
	require.True(t, d.State().LoggedIn(), d.State().Notice)
	return d
}

func TestPatientSeesDoctorNote(t *testing.T) {
	ctx := context.Background()
	backend := stubapi.NewServer("view-test")
	for _, p := range []models.Profile{
		{Username: "doc", Password: "pw", Email: "doc@x.io", Role: models.RoleDoctor},
		{Username: "pat1", Password: "x", Email: "pat1@x.io", Role: models.RolePatient},
	} {
		_, err := backend.AddUser(p)
		require.NoError(t, err)
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	pat := loginAs(t, srv.URL, "pat1", "x")
	out := render(t, pat.State())
	assert.Contains(t, out, "DentalAI - Patient Dashboard")
	assert.Contains(t, out, "Book Appointment")
	assert.Contains(t, out, "My Appointments")
	assert.NotContains(t, out, "\nPatients\n")

	require.NoError(t, pat.EditAppointment("date", "2026-11-01"))
	require.NoError(t, pat.EditAppointment("time", "09:00"))
	require.NoError(t, pat.EditAppointment("reason", "Cleaning"))
	require.NoError(t, pat.CreateAppointment(ctx))
	require.Len(t, pat.State().Appointments, 1)

	doc := loginAs(t, srv.URL, "doc", "pw")
	require.NoError(t, doc.UpdateAppointmentStatus(ctx, pat.State().Appointments[0].ID, models.StatusConfirmed))

	pat.Enter(ctx)
	out = render(t, pat.State())
	assert.Contains(t, out, "confirmed")
	assert.Contains(t, out, "Status updated to confirmed by doctor")
}
