// Package stubapi is an in-memory stand-in for the DentalAI REST backend.
// It serves the same routes and payloads as the real service and keeps all
// data in process memory.
package stubapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"dentaldesk/internal/models"
	"dentaldesk/internal/utils"
)

type user struct {
	ID             string
	Username       string
	Email          string
	FullName       string
	Role           models.Role
	HashedPassword string
	CreatedAt      time.Time
}

func (u *user) displayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Server holds backend state and routes.
type Server struct {
	mu            sync.RWMutex
	secret        []byte
	users         map[string]*user // by username
	patients      []models.Patient
	appointments  []models.Appointment
	notifications []models.Notification

	router *mux.Router
	log    *utils.Logger
	now    func() time.Time
}

type Option func(*Server)

func WithLogger(l *utils.Logger) Option { return func(s *Server) { s.log = l } }

// WithClock overrides time.Now for created_at stamps.
func WithClock(now func() time.Time) Option { return func(s *Server) { s.now = now } }

func NewServer(secret string, opts ...Option) *Server {
	s := &Server{
		secret: []byte(secret),
		users:  make(map[string]*user),
		log:    utils.Discard(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "DentalAI backend is running"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "timestamp": s.now()})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/login", s.handleLogin).Methods(http.MethodPost)

	// the real backend mounts collections with and without a trailing slash
	for _, p := range []string{"/api/patients", "/api/patients/"} {
		r.HandleFunc(p, s.requireRole(models.RoleDoctor, s.handleCreatePatient)).Methods(http.MethodPost)
		r.HandleFunc(p, s.requireUser(s.handleListPatients)).Methods(http.MethodGet)
	}
	for _, p := range []string{"/api/appointments", "/api/appointments/"} {
		r.HandleFunc(p, s.requireRole(models.RolePatient, s.handleCreateAppointment)).Methods(http.MethodPost)
		r.HandleFunc(p, s.requireUser(s.handleListAppointments)).Methods(http.MethodGet)
	}
	r.HandleFunc("/api/appointments/{id}", s.requireRole(models.RoleDoctor, s.handleUpdateAppointment)).Methods(http.MethodPut)

	for _, p := range []string{"/api/notifications", "/api/notifications/"} {
		r.HandleFunc(p, s.requireRole(models.RoleDoctor, s.handleListNotifications)).Methods(http.MethodGet)
	}
	r.HandleFunc("/api/notifications/{id}/read", s.requireRole(models.RoleDoctor, s.handleMarkRead)).Methods(http.MethodPut)

	for _, p := range []string{"/api/chat", "/api/chat/"} {
		r.HandleFunc(p, s.requireUser(s.handleChat)).Methods(http.MethodPost)
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Infof("%s %s %d", r.Method, r.URL.Path, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
