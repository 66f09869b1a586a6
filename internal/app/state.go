// Package app holds the client's application state and the handlers that
// move it: a pure reducer over explicit actions, a store that serialises
// dispatches, a refresher that turns invalidation signals into list fetches,
// and the Dashboard that owns every Gateway call.
package app

import "dentaldesk/internal/models"

// View is one of the three top-level screens.
type View string

const (
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewDashboard View = "dashboard"
)

// State is the whole client state. Values are treated as immutable; Reduce
// returns a new State and never writes through the old one's slices.
type State struct {
	View    View
	Session models.Session

	Patients          []models.Patient
	Appointments      []models.Appointment
	Notifications     []models.Notification
	SelectedPatientID string

	AuthForm        models.AuthForm
	PatientForm     models.PatientForm
	AppointmentForm models.AppointmentForm

	ShowPatientForm     bool
	ShowAppointmentForm bool
	Busy                bool

	Chat      []models.ChatMessage
	ChatInput string

	Notice string
}

// Initial is the logged-out starting state.
func Initial() State {
	return State{View: ViewLogin, AuthForm: models.NewAuthForm()}
}

func (s State) LoggedIn() bool { return s.Session.Valid() }

func (s State) Role() models.Role { return s.Session.Role }

func (s State) IsDoctor() bool { return s.LoggedIn() && s.Session.Role == models.RoleDoctor }

// SelectedPatient resolves SelectedPatientID against the cached list.
func (s State) SelectedPatient() (models.Patient, bool) {
	if s.SelectedPatientID == "" {
		return models.Patient{}, false
	}
	for _, p := range s.Patients {
		if p.ID == s.SelectedPatientID {
			return p, true
		}
	}
	return models.Patient{}, false
}

// UnreadCount is the navbar badge value; always 0 for patients.
func (s State) UnreadCount() int {
	if !s.IsDoctor() {
		return 0
	}
	return models.UnreadCount(s.Notifications)
}
