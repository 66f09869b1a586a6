// Package view renders app.State as plain text for the terminal client.
package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"dentaldesk/internal/app"
	"dentaldesk/internal/models"
)

const clockLayout = "15:04:05"

// Current picks the screen for s. The dashboard needs a session; without one
// the auth screens are shown.
func Current(s app.State) app.View {
	if s.LoggedIn() {
		return app.ViewDashboard
	}
	if s.View == app.ViewRegister {
		return app.ViewRegister
	}
	return app.ViewLogin
}

func Render(w io.Writer, s app.State) error {
	var err error
	switch Current(s) {
	case app.ViewDashboard:
		err = renderDashboard(w, s)
	case app.ViewRegister:
		renderAuth(w, s, false)
	default:
		renderAuth(w, s, true)
	}
	if err != nil {
		return err
	}
	if s.Notice != "" {
		fmt.Fprintf(w, "\n>> %s\n", s.Notice)
	}
	return nil
}

func renderAuth(w io.Writer, s app.State, isLogin bool) {
	f := s.AuthForm
	fmt.Fprintln(w, "DentalAI")
	if isLogin {
		fmt.Fprintln(w, "Welcome Back")
	} else {
		fmt.Fprintln(w, "Create Your Account")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Username:  %s\n", f.Username)
	if !isLogin {
		fmt.Fprintf(w, "  Full Name: %s\n", f.FullName)
		fmt.Fprintf(w, "  Email:     %s\n", f.Email)
	}
	fmt.Fprintf(w, "  Password:  %s\n", strings.Repeat("*", len(f.Password)))
	if !isLogin {
		fmt.Fprintf(w, "  Role:      %s (patient|doctor)\n", f.Role)
	}

	fmt.Fprintln(w)
	switch {
	case s.Busy:
		fmt.Fprintln(w, "Processing...")
	case isLogin:
		fmt.Fprintln(w, "Don't have an account? Type 'register' to Create Account.")
	default:
		fmt.Fprintln(w, "Already have an account? Type 'login' to Sign In.")
	}
}

func renderDashboard(w io.Writer, s app.State) error {
	title := "DentalAI - " + s.Role().Title() + " Dashboard"
	if n := s.UnreadCount(); n > 0 {
		title += fmt.Sprintf("  [%d new]", n)
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))

	var err error
	if s.IsDoctor() {
		err = renderDoctor(w, s)
	} else {
		err = renderPatient(w, s)
	}
	if err != nil {
		return err
	}
	renderChat(w, s)
	return nil
}

func renderDoctor(w io.Writer, s app.State) error {
	fmt.Fprintln(w, "\nPatients")
	if s.ShowPatientForm {
		f := s.PatientForm
		fmt.Fprintln(w, "  New patient:")
		fmt.Fprintf(w, "    name=%s email=%s phone=%s date_of_birth=%s\n", f.Name, f.Email, f.Phone, f.DateOfBirth)
		fmt.Fprintf(w, "    medical_notes=%s\n", f.MedicalNotes)
	}
	if len(s.Patients) == 0 {
		fmt.Fprintln(w, "  No patients yet.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "   \tID\tNAME\tEMAIL\tPHONE\tDOB")
		for _, p := range s.Patients {
			mark := " "
			if p.ID == s.SelectedPatientID {
				mark = "*"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", mark, p.ID, p.Name, p.Email, p.Phone, p.DateOfBirth)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nAppointments")
	return renderAppointments(w, s.Appointments, true)
}

func renderPatient(w io.Writer, s app.State) error {
	fmt.Fprintln(w, "\nBook Appointment")
	if s.ShowAppointmentForm {
		f := s.AppointmentForm
		fmt.Fprintf(w, "  date=%s time=%s\n", f.Date, f.Time)
		fmt.Fprintf(w, "  reason=%s\n", f.Reason)
		fmt.Fprintf(w, "  notes=%s\n", f.Notes)
	}

	fmt.Fprintln(w, "\nMy Appointments")
	if len(s.Appointments) == 0 {
		fmt.Fprintln(w, "  No appointments yet. Book your first appointment!")
		return nil
	}
	return renderAppointments(w, s.Appointments, false)
}

func renderAppointments(w io.Writer, list []models.Appointment, doctor bool) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "  No appointments yet.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if doctor {
		fmt.Fprintln(tw, "  ID\tDATE\tTIME\tPATIENT\tREASON\tSTATUS\t")
	} else {
		fmt.Fprintln(tw, "  ID\tDATE\tTIME\tREASON\tSTATUS\tNOTES")
	}
	for _, a := range list {
		if !doctor {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Date, a.Time, a.Reason, a.Status, a.Notes)
			continue
		}
		hint := ""
		if a.Status == models.StatusPending {
			hint = fmt.Sprintf("confirm %s | cancel %s", a.ID, a.ID)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Date, a.Time, a.PatientName, a.Reason, a.Status, hint)
	}
	return tw.Flush()
}

func renderChat(w io.Writer, s app.State) {
	mode := "Patient Mode"
	if s.IsDoctor() {
		mode = "Professional Mode"
	}
	fmt.Fprintf(w, "\nAI Dental Assistant (%s)\n", mode)
	if p, ok := s.SelectedPatient(); ok && s.IsDoctor() {
		fmt.Fprintf(w, "Consulting about: %s\n", p.Name)
	}

	if len(s.Chat) == 0 {
		fmt.Fprintln(w, "  Welcome to your AI Dental Assistant!")
		if s.IsDoctor() {
			fmt.Fprintln(w, "  Get professional insights, treatment recommendations, and clinical guidance. Select a patient for personalized consultation.")
		} else {
			fmt.Fprintln(w, "  Ask me about dental health, oral care tips, or any concerns you might have. I'm here to help!")
		}
		return
	}
	for _, m := range s.Chat {
		who := "AI"
		if m.Type == models.MessageUser {
			who = "You"
		}
		fmt.Fprintf(w, "  [%s] %s: %s\n", m.Timestamp.Format(clockLayout), who, m.Content)
	}
}
