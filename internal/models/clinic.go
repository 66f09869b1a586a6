package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Settable reports whether a doctor may move an appointment to s.
func (s AppointmentStatus) Settable() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

type Patient struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DateOfBirth  string    `json:"date_of_birth"`
	MedicalNotes string    `json:"medical_notes"`
	LastVisit    string    `json:"last_visit"`
	CreatedBy    string    `json:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Appointment struct {
	ID           string            `json:"id"`
	PatientID    string            `json:"patient_id"`
	PatientName  string            `json:"patient_name"`
	PatientEmail string            `json:"patient_email"`
	DoctorID     string            `json:"doctor_id,omitempty"`
	Date         string            `json:"appointment_date"`
	Time         string            `json:"appointment_time"`
	Reason       string            `json:"reason"`
	Notes        string            `json:"notes"`
	Status       AppointmentStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

// StatusUpdate is the body of PUT /api/appointments/{id}.
type StatusUpdate struct {
	Status AppointmentStatus `json:"status"`
	Notes  string            `json:"notes"`
}

type Notification struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Message         string    `json:"message"`
	AppointmentID   string    `json:"appointment_id"`
	PatientName     string    `json:"patient_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	CreatedAt       time.Time `json:"created_at"`
	Read            bool      `json:"read"`
}

// UnreadCount returns how many notifications have not been read.
func UnreadCount(ns []Notification) int {
	n := 0
	for _, x := range ns {
		if !x.Read {
			n++
		}
	}
	return n
}
