package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"dentaldesk/internal/gateway"
	"dentaldesk/internal/models"
	"dentaldesk/internal/session"
	"dentaldesk/internal/utils"
)

var (
	ErrBusy           = errors.New("a submission is already in flight")
	ErrForbidden      = errors.New("not allowed for this role")
	ErrUnknownPatient = errors.New("patient not in list")
)

const chatApology = "Sorry, I encountered an error. Please try again."

// Gateway is what the dashboard needs from the remote API.
type Gateway interface {
	Lister
	Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error)
	Register(ctx context.Context, p models.Profile) (models.RegisterResponse, error)
	CreatePatient(ctx context.Context, p models.PatientForm) (models.Patient, error)
	CreateAppointment(ctx context.Context, a models.AppointmentForm) (models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus, note string) (models.Appointment, error)
	SendChatMessage(ctx context.Context, text, patientID string) (models.ChatResponse, error)
}

// Dashboard owns every user-triggered flow. Gateway failures end as a
// notice, a log line or a chat apology and are not returned; the returned
// errors are precondition failures only.
type Dashboard struct {
	store    *Store
	sessions *session.Store
	api      Gateway
	refresh  *Refresher
	log      *utils.Logger
	now      func() time.Time
}

type Option func(*Dashboard)

func WithLogger(l *utils.Logger) Option { return func(d *Dashboard) { d.log = l } }

func WithClock(now func() time.Time) Option { return func(d *Dashboard) { d.now = now } }

// NewDashboard builds a logged-out dashboard over api and sessions.
func NewDashboard(api Gateway, sessions *session.Store, opts ...Option) *Dashboard {
	d := &Dashboard{
		store:    NewStore(Initial()),
		sessions: sessions,
		api:      api,
		now:      time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	d.refresh = NewRefresher(d.store, api, d.log)
	return d
}

// Store exposes the underlying store for subscribers.
func (d *Dashboard) Store() *Store { return d.store }

// State returns the current state snapshot.
func (d *Dashboard) State() State { return d.store.State() }

func (d *Dashboard) notice(text string) { d.store.Dispatch(NoticeShown{Text: text}) }

// submit runs fn with busy set, clearing it afterwards whatever fn does.
func (d *Dashboard) submit(fn func()) error {
	if !d.store.tryBusy() {
		return ErrBusy
	}
	defer d.store.Dispatch(BusyChanged{Busy: false})
	fn()
	return nil
}

// Restore adopts a previously stored session and runs the initial load.
func (d *Dashboard) Restore(ctx context.Context) bool {
	sess, ok := d.sessions.Load()
	if !ok {
		return false
	}
	d.store.Dispatch(LoggedIn{Session: sess})
	d.Enter(ctx)
	return true
}

// Login authenticates with the auth form, stores the session and runs the initial load.
func (d *Dashboard) Login(ctx context.Context) error {
	var entered bool
	err := d.submit(func() {
		resp, err := d.api.Login(ctx, d.State().AuthForm.Credentials())
		if err != nil {
			d.log.Warnf("login: %v", err)
			d.notice("Login failed: " + gateway.DetailOr(err, "Unknown error"))
			return
		}
		sess := resp.Session()
		if err := d.sessions.Save(sess); err != nil {
			d.log.Errorf("login: %v", err)
			d.notice("Login failed: Unknown error")
			return
		}
		d.store.Dispatch(LoggedIn{Session: sess})
		entered = true
	})
	if entered {
		d.Enter(ctx)
	}
	return err
}

// Register creates an account from the auth form and returns to the login view.
func (d *Dashboard) Register(ctx context.Context) error {
	return d.submit(func() {
		form := d.State().AuthForm
		if _, err := d.api.Register(ctx, form.Profile()); err != nil {
			d.log.Warnf("register: %v", err)
			d.notice("Registration failed: " + gateway.DetailOr(err, "Unknown error"))
			return
		}
		d.store.Dispatch(
			ViewChanged{View: ViewLogin},
			NoticeShown{Text: fmt.Sprintf("Registration successful as %s! Please login.", form.Role)},
		)
	})
}

// Logout ends the session. Calling it with no session is a no-op.
func (d *Dashboard) Logout() {
	if err := d.sessions.Clear(); err != nil {
		d.log.Errorf("logout: %v", err)
	}
	d.store.Dispatch(LoggedOut{})
}

// Enter runs the dashboard's initial load for the current role.
func (d *Dashboard) Enter(ctx context.Context) {
	st := d.State()
	if !st.LoggedIn() {
		return
	}
	if st.IsDoctor() {
		d.refresh.Invalidate(ctx, Patients, Notifications, Appointments)
		return
	}
	d.refresh.Invalidate(ctx, Appointments)
}

func (d *Dashboard) requireRole(role models.Role) error {
	st := d.State()
	if !st.LoggedIn() {
		return session.ErrNoSession
	}
	if st.Role() != role {
		return ErrForbidden
	}
	return nil
}

// CreatePatient submits the patient draft. Doctors only.
func (d *Dashboard) CreatePatient(ctx context.Context) error {
	if err := d.requireRole(models.RoleDoctor); err != nil {
		return err
	}
	return d.submit(func() {
		if _, err := d.api.CreatePatient(ctx, d.State().PatientForm); err != nil {
			d.log.Warnf("create patient: %v", err)
			d.notice("Failed to create patient: " + gateway.DetailOr(err, "Unknown"))
			return
		}
		d.store.Dispatch(PatientFormSubmitted{})
		d.refresh.Invalidate(ctx, Patients)
		d.notice("Patient created successfully!")
	})
}

// CreateAppointment books the appointment draft. Patients only.
func (d *Dashboard) CreateAppointment(ctx context.Context) error {
	if err := d.requireRole(models.RolePatient); err != nil {
		return err
	}
	return d.submit(func() {
		if _, err := d.api.CreateAppointment(ctx, d.State().AppointmentForm); err != nil {
			d.log.Warnf("create appointment: %v", err)
			d.notice("Failed to book appointment: " + gateway.DetailOr(err, "Unknown"))
			return
		}
		d.store.Dispatch(AppointmentFormSubmitted{})
		d.refresh.Invalidate(ctx, Appointments)
		d.notice("Appointment booked successfully!")
	})
}

// UpdateAppointmentStatus confirms or cancels an appointment. Doctors only.
func (d *Dashboard) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	if err := d.requireRole(models.RoleDoctor); err != nil {
		return err
	}
	if !status.Settable() {
		return fmt.Errorf("status %q: must be confirmed or cancelled", status)
	}
	note := fmt.Sprintf("Status updated to %s by doctor", status)
	if _, err := d.api.UpdateAppointmentStatus(ctx, id, status, note); err != nil {
		d.log.Warnf("update appointment %s: %v", id, err)
		d.notice("Failed to update appointment: " + gateway.DetailOr(err, "Unknown"))
		return nil
	}
	d.refresh.Invalidate(ctx, Appointments, Notifications)
	d.notice(fmt.Sprintf("Appointment %s successfully!", status))
	return nil
}

// SendChat sends the current chat input. Blank input does nothing.
func (d *Dashboard) SendChat(ctx context.Context) error {
	st := d.State()
	text := st.ChatInput
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !st.LoggedIn() {
		return session.ErrNoSession
	}
	d.store.Dispatch(
		ChatAppended{Message: d.message(models.MessageUser, text)},
		ChatInputChanged{Input: ""},
	)

	reply := chatApology
	resp, err := d.api.SendChatMessage(ctx, text, st.SelectedPatientID)
	if err != nil {
		d.log.Warnf("chat: %v", err)
	} else {
		reply = resp.Response
	}
	d.store.Dispatch(ChatAppended{Message: d.message(models.MessageAI, reply)})
	return nil
}

// Chat sets the input to text and sends it.
func (d *Dashboard) Chat(ctx context.Context, text string) error {
	d.EditChat(text)
	return d.SendChat(ctx)
}

func (d *Dashboard) message(t models.MessageType, content string) models.ChatMessage {
	return models.ChatMessage{
		ID:        uuid.NewString(),
		Type:      t,
		Content:   content,
		Timestamp: d.now(),
	}
}

// SelectPatient sets the chat context; an empty id clears it.
func (d *Dashboard) SelectPatient(id string) error {
	if err := d.requireRole(models.RoleDoctor); err != nil {
		return err
	}
	if id != "" {
		st := d.State()
		st.SelectedPatientID = id
		if _, ok := st.SelectedPatient(); !ok {
			return fmt.Errorf("select %s: %w", id, ErrUnknownPatient)
		}
	}
	d.store.Dispatch(PatientSelected{ID: id})
	return nil
}

// ShowRegister switches to the registration view while logged out.
func (d *Dashboard) ShowRegister() { d.showAuth(ViewRegister) }

// ShowLogin switches to the login view while logged out.
func (d *Dashboard) ShowLogin() { d.showAuth(ViewLogin) }

func (d *Dashboard) showAuth(v View) {
	if d.State().LoggedIn() {
		return
	}
	d.store.Dispatch(ViewChanged{View: v})
}

// TogglePatientForm opens or closes the new-patient panel.
func (d *Dashboard) TogglePatientForm() error {
	if err := d.requireRole(models.RoleDoctor); err != nil {
		return err
	}
	d.store.Dispatch(PatientFormToggled{Open: !d.State().ShowPatientForm})
	return nil
}

// ToggleAppointmentForm opens or closes the booking panel.
func (d *Dashboard) ToggleAppointmentForm() error {
	if err := d.requireRole(models.RolePatient); err != nil {
		return err
	}
	d.store.Dispatch(AppointmentFormToggled{Open: !d.State().ShowAppointmentForm})
	return nil
}

// CancelPatientForm discards the draft and closes the panel.
func (d *Dashboard) CancelPatientForm() { d.store.Dispatch(PatientFormSubmitted{}) }

// CancelAppointmentForm discards the booking draft and closes the panel.
func (d *Dashboard) CancelAppointmentForm() { d.store.Dispatch(AppointmentFormSubmitted{}) }

// EditAuth sets one auth form field.
func (d *Dashboard) EditAuth(field, value string) error {
	form := d.State().AuthForm
	if err := form.Set(field, value); err != nil {
		return err
	}
	d.store.Dispatch(AuthFormChanged{Form: form})
	return nil
}

// EditPatient sets one patient draft field.
func (d *Dashboard) EditPatient(field, value string) error {
	form := d.State().PatientForm
	if err := form.Set(field, value); err != nil {
		return err
	}
	d.store.Dispatch(PatientFormChanged{Form: form})
	return nil
}

// EditAppointment sets one booking draft field.
func (d *Dashboard) EditAppointment(field, value string) error {
	form := d.State().AppointmentForm
	if err := form.Set(field, value); err != nil {
		return err
	}
	d.store.Dispatch(AppointmentFormChanged{Form: form})
	return nil
}

// EditChat replaces the chat input.
func (d *Dashboard) EditChat(text string) { d.store.Dispatch(ChatInputChanged{Input: text}) }

// DismissNotice clears the notice.
func (d *Dashboard) DismissNotice() { d.store.Dispatch(NoticeShown{}) }
