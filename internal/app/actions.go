package app

import "dentaldesk/internal/models"

// Action is a state transition consumed by Reduce.
type Action interface{ action() }

type (
	LoggedIn  struct{ Session models.Session }
	LoggedOut struct{}

	ViewChanged struct{ View View }

	PatientsLoaded      struct{ Patients []models.Patient }
	AppointmentsLoaded  struct{ Appointments []models.Appointment }
	NotificationsLoaded struct{ Notifications []models.Notification }

	AuthFormChanged        struct{ Form models.AuthForm }
	PatientFormChanged     struct{ Form models.PatientForm }
	AppointmentFormChanged struct{ Form models.AppointmentForm }

	// Open is the desired panel state.
	PatientFormToggled     struct{ Open bool }
	AppointmentFormToggled struct{ Open bool }

	// Submitted/Cancelled reset the draft and close its panel.
	PatientFormSubmitted     struct{}
	AppointmentFormSubmitted struct{}

	BusyChanged      struct{ Busy bool }
	PatientSelected  struct{ ID string }
	ChatInputChanged struct{ Input string }
	ChatAppended     struct{ Message models.ChatMessage }

	// NoticeShown sets the blocking notice; an empty Text dismisses it.
	NoticeShown struct{ Text string }
)

func (LoggedIn) action()                 {}
func (LoggedOut) action()                {}
func (ViewChanged) action()              {}
func (PatientsLoaded) action()           {}
func (AppointmentsLoaded) action()       {}
func (NotificationsLoaded) action()      {}
func (AuthFormChanged) action()          {}
func (PatientFormChanged) action()       {}
func (AppointmentFormChanged) action()   {}
func (PatientFormToggled) action()       {}
func (AppointmentFormToggled) action()   {}
func (PatientFormSubmitted) action()     {}
func (AppointmentFormSubmitted) action() {}
func (BusyChanged) action()              {}
func (PatientSelected) action()          {}
func (ChatInputChanged) action()         {}
func (ChatAppended) action()             {}
func (NoticeShown) action()              {}
