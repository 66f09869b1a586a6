package stubapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"dentaldesk/internal/models"
)

const notificationLimit = 50

func (s *Server) handleCreatePatient(w http.ResponseWriter, r *http.Request, u *user) {
	var f models.PatientForm
	if err := decode(r, &f); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if f.Name == "" || f.Email == "" || f.Phone == "" || f.DateOfBirth == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "name, email, phone and date_of_birth are required")
		return
	}
	p := models.Patient{
		ID:           uuid.New().String(),
		Name:         f.Name,
		Email:        f.Email,
		Phone:        f.Phone,
		DateOfBirth:  f.DateOfBirth,
		MedicalNotes: f.MedicalNotes,
		LastVisit:    f.LastVisit,
		CreatedBy:    u.ID,
		CreatedAt:    s.now(),
	}
	s.mu.Lock()
	s.patients = append(s.patients, p)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListPatients(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Patient{}
	for i := len(s.patients) - 1; i >= 0; i-- {
		p := s.patients[i]
		if u.Role == models.RoleDoctor || strings.EqualFold(p.Email, u.Email) {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request, u *user) {
	var f models.AppointmentForm
	if err := decode(r, &f); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if f.Date == "" || f.Time == "" || f.Reason == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "appointment_date, appointment_time and reason are required")
		return
	}
	now := s.now()
	a := models.Appointment{
		ID:           uuid.New().String(),
		PatientID:    u.ID,
		PatientName:  u.displayName(),
		PatientEmail: u.Email,
		Date:         f.Date,
		Time:         f.Time,
		Reason:       f.Reason,
		Notes:        f.Notes,
		Status:       models.StatusPending,
		CreatedAt:    now,
	}
	n := models.Notification{
		ID:              uuid.New().String(),
		Type:            "new_appointment",
		Message:         fmt.Sprintf("New appointment from %s", a.PatientName),
		AppointmentID:   a.ID,
		PatientName:     a.PatientName,
		AppointmentDate: a.Date,
		AppointmentTime: a.Time,
		CreatedAt:       now,
	}
	s.mu.Lock()
	s.appointments = append(s.appointments, a)
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Appointment{}
	for i := len(s.appointments) - 1; i >= 0; i-- {
		a := s.appointments[i]
		if u.Role == models.RoleDoctor || a.PatientID == u.ID {
			out = append(out, a)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request, u *user) {
	id := mux.Vars(r)["id"]
	var upd models.StatusUpdate
	if err := decode(r, &upd); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	switch upd.Status {
	case models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted:
	default:
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid status %q", upd.Status))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.appointments {
		if s.appointments[i].ID != id {
			continue
		}
		s.appointments[i].Status = upd.Status
		s.appointments[i].Notes = upd.Notes
		s.appointments[i].DoctorID = u.ID
		writeJSON(w, http.StatusOK, s.appointments[i])
		return
	}
	writeDetail(w, http.StatusNotFound, "Appointment not found")
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Notification{}
	for i := len(s.notifications) - 1; i >= 0 && len(out) < notificationLimit; i-- {
		out = append(out, s.notifications[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request, _ *user) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Notification not found")
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, u *user) {
	var req models.ChatRequest
	if err := decode(r, &req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	var reply string
	if u.Role == models.RoleDoctor {
		reply = fmt.Sprintf("I understand you asked: '%s'. As a clinical assistant, I suggest reviewing guidelines.", req.Message)
		if p, ok := s.patient(req.PatientID); ok {
			reply += fmt.Sprintf(" Context: %s (DOB %s).", p.Name, p.DateOfBirth)
		}
		reply += " How else can I assist?"
	} else {
		reply = fmt.Sprintf("I understand you asked: '%s'. For dental advice, consult your dentist.", req.Message)
	}
	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply, Timestamp: s.now()})
}

func (s *Server) patient(id string) (models.Patient, bool) {
	if id == "" {
		return models.Patient{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, true
		}
	}
	return models.Patient{}, false
}

// MarkRead marks a notification read; tests use it to shape badge counts.
func (s *Server) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}
