package app

import (
	"context"

	"dentaldesk/internal/models"
	"dentaldesk/internal/utils"
)

// Collection names a server-backed list cached in State.
type Collection int

const (
	Patients Collection = iota
	Appointments
	Notifications
)

func (c Collection) String() string {
	switch c {
	case Patients:
		return "patients"
	case Appointments:
		return "appointments"
	case Notifications:
		return "notifications"
	}
	return "unknown"
}

// Lister is the read side of the gateway.
type Lister interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListNotifications(ctx context.Context) ([]models.Notification, error)
}

// Refresher refetches invalidated collections and dispatches the results.
// A failed fetch keeps the previous list.
type Refresher struct {
	store *Store
	api   Lister
	log   *utils.Logger
}

func NewRefresher(store *Store, api Lister, log *utils.Logger) *Refresher {
	return &Refresher{store: store, api: api, log: log}
}

func allowed(role models.Role, c Collection) bool {
	switch c {
	case Appointments:
		return role.Valid()
	case Patients, Notifications:
		return role == models.RoleDoctor
	}
	return false
}

// Invalidate fetches each collection the current role may see.
func (r *Refresher) Invalidate(ctx context.Context, cols ...Collection) {
	for _, c := range cols {
		st := r.store.State()
		if !st.LoggedIn() || !allowed(st.Role(), c) {
			continue
		}
		if err := r.fetch(ctx, c); err != nil {
			r.log.Warnf("fetch %s: %v", c, err)
		}
	}
}

func (r *Refresher) fetch(ctx context.Context, c Collection) error {
	switch c {
	case Patients:
		ps, err := r.api.ListPatients(ctx)
		if err != nil {
			return err
		}
		r.store.Dispatch(PatientsLoaded{Patients: ps})
	case Appointments:
		as, err := r.api.ListAppointments(ctx)
		if err != nil {
			return err
		}
		r.store.Dispatch(AppointmentsLoaded{Appointments: as})
	case Notifications:
		ns, err := r.api.ListNotifications(ctx)
		if err != nil {
			return err
		}
		r.store.Dispatch(NotificationsLoaded{Notifications: ns})
	}
	return nil
}
