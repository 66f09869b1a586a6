package models

import (
	"errors"
	"fmt"
)

var ErrUnknownField = errors.New("unknown form field")

// AuthForm is the shared login/registration draft.
type AuthForm struct {
	Username string
	Email    string
	Password string
	Role     Role
	FullName string
}

func NewAuthForm() AuthForm { return AuthForm{Role: RolePatient} }

func (f *AuthForm) Reset() { *f = NewAuthForm() }

func (f *AuthForm) Set(field, value string) error {
	switch field {
	case "username":
		f.Username = value
	case "email":
		f.Email = value
	case "password":
		f.Password = value
	case "full_name", "name":
		f.FullName = value
	case "role":
		r := Role(value)
		if !r.Valid() {
			return fmt.Errorf("role %q: must be patient or doctor", value)
		}
		f.Role = r
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

func (f AuthForm) Credentials() Credentials {
	return Credentials{Username: f.Username, Password: f.Password}
}

func (f AuthForm) Profile() Profile {
	return Profile{
		Username: f.Username,
		Email:    f.Email,
		Password: f.Password,
		Role:     f.Role,
		FullName: f.FullName,
	}
}

// PatientForm is the create-patient draft; it doubles as the request body.
type PatientForm struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DateOfBirth  string `json:"date_of_birth"`
	MedicalNotes string `json:"medical_notes"`
	LastVisit    string `json:"last_visit"`
}

func (f *PatientForm) Reset() { *f = PatientForm{} }

func (f *PatientForm) Set(field, value string) error {
	switch field {
	case "name":
		f.Name = value
	case "email":
		f.Email = value
	case "phone":
		f.Phone = value
	case "date_of_birth", "dob":
		f.DateOfBirth = value
	case "medical_notes", "notes":
		f.MedicalNotes = value
	case "last_visit":
		f.LastVisit = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}

// AppointmentForm is the booking draft; it doubles as the request body.
type AppointmentForm struct {
	Date   string `json:"appointment_date"`
	Time   string `json:"appointment_time"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (f *AppointmentForm) Reset() { *f = AppointmentForm{} }

func (f *AppointmentForm) Set(field, value string) error {
	switch field {
	case "date", "appointment_date":
		f.Date = value
	case "time", "appointment_time":
		f.Time = value
	case "reason":
		f.Reason = value
	case "notes":
		f.Notes = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	return nil
}
