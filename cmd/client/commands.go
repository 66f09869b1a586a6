package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"dentaldesk/internal/app"
	"dentaldesk/internal/models"
)

var errUnknownCommand = errors.New("unknown command (try 'help')")

const helpText = `Commands:
  login | register        switch between the auth screens
  set <field> <value>     edit the open form (auth, patient or appointment)
  submit                  submit the open form
  new                     open or close the patient/appointment form
  discard                 close the open form and clear it
  confirm <id>            confirm an appointment (doctor)
  cancel <id>             cancel an appointment (doctor)
  select <id>             set the chat patient (doctor); no id clears it
  chat <text>             ask the assistant
  refresh                 reload the dashboard lists
  ok                      dismiss the notice (any command does)
  logout
  quit`

// execute runs one REPL line. Any command acknowledges the current notice.
// quit reports whether the loop should stop.
func execute(ctx context.Context, d *app.Dashboard, line string, out io.Writer) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	st := d.State()
	if cmd != "" && st.Notice != "" {
		d.DismissNotice()
	}

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(out, helpText)
		return false, nil
	case "login":
		if !st.LoggedIn() && st.View == app.ViewLogin {
			return false, d.Login(ctx)
		}
		d.ShowLogin()
	case "register":
		if !st.LoggedIn() && st.View == app.ViewRegister {
			return false, d.Register(ctx)
		}
		d.ShowRegister()
	case "set":
		field, value, ok := strings.Cut(rest, " ")
		if !ok && field == "" {
			return false, errors.New("usage: set <field> <value>")
		}
		return false, edit(d, st, field, strings.TrimSpace(value))
	case "submit":
		return false, submit(ctx, d, st)
	case "new":
		if st.IsDoctor() {
			return false, d.TogglePatientForm()
		}
		return false, d.ToggleAppointmentForm()
	case "discard":
		if st.IsDoctor() {
			d.CancelPatientForm()
		} else {
			d.CancelAppointmentForm()
		}
	case "confirm":
		return false, d.UpdateAppointmentStatus(ctx, rest, models.StatusConfirmed)
	case "cancel":
		return false, d.UpdateAppointmentStatus(ctx, rest, models.StatusCancelled)
	case "select":
		return false, d.SelectPatient(rest)
	case "chat":
		return false, d.Chat(ctx, rest)
	case "refresh":
		d.Enter(ctx)
	case "ok":
		d.DismissNotice()
	case "logout":
		d.Logout()
	default:
		return false, errUnknownCommand
	}
	return false, nil
}

func edit(d *app.Dashboard, st app.State, field, value string) error {
	switch {
	case !st.LoggedIn():
		return d.EditAuth(field, value)
	case st.ShowPatientForm:
		return d.EditPatient(field, value)
	case st.ShowAppointmentForm:
		return d.EditAppointment(field, value)
	}
	return errors.New("no form is open (use 'new')")
}

func submit(ctx context.Context, d *app.Dashboard, st app.State) error {
	switch {
	case !st.LoggedIn() && st.View == app.ViewRegister:
		return d.Register(ctx)
	case !st.LoggedIn():
		return d.Login(ctx)
	case st.ShowPatientForm:
		return d.CreatePatient(ctx)
	case st.ShowAppointmentForm:
		return d.CreateAppointment(ctx)
	}
	return errors.New("nothing to submit")
}
