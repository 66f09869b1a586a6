package app

import "dentaldesk/internal/models"

// Reduce applies a to s. It is pure: no I/O, and the slices of s are never
// modified in place.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoggedIn:
		s.Session = a.Session
		s.View = ViewDashboard
	case LoggedOut:
		s.Session = models.Session{}
		s.View = ViewLogin
		s.Patients = nil
		s.Appointments = nil
		s.Notifications = nil
		s.SelectedPatientID = ""
		s.Chat = nil
		s.ChatInput = ""
		s.ShowPatientForm = false
		s.ShowAppointmentForm = false
	case ViewChanged:
		s.View = a.View
	case PatientsLoaded:
		s.Patients = append([]models.Patient(nil), a.Patients...)
	case AppointmentsLoaded:
		s.Appointments = append([]models.Appointment(nil), a.Appointments...)
	case NotificationsLoaded:
		s.Notifications = append([]models.Notification(nil), a.Notifications...)
	case AuthFormChanged:
		s.AuthForm = a.Form
	case PatientFormChanged:
		s.PatientForm = a.Form
	case AppointmentFormChanged:
		s.AppointmentForm = a.Form
	case PatientFormToggled:
		s.ShowPatientForm = a.Open
	case AppointmentFormToggled:
		s.ShowAppointmentForm = a.Open
	case PatientFormSubmitted:
		s.PatientForm.Reset()
		s.ShowPatientForm = false
	case AppointmentFormSubmitted:
		s.AppointmentForm.Reset()
		s.ShowAppointmentForm = false
	case BusyChanged:
		s.Busy = a.Busy
	case PatientSelected:
		s.SelectedPatientID = a.ID
	case ChatInputChanged:
		s.ChatInput = a.Input
	case ChatAppended:
		chat := make([]models.ChatMessage, len(s.Chat), len(s.Chat)+1)
		copy(chat, s.Chat)
		s.Chat = append(chat, a.Message)
	case NoticeShown:
		s.Notice = a.Text
	}
	return s
}
