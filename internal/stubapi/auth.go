package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"dentaldesk/internal/models"
)

const tokenTTL = 30 * time.Minute

type userHandler func(w http.ResponseWriter, r *http.Request, u *user)

// AddUser registers an account directly; tests use it to seed state.
func (s *Server) AddUser(p models.Profile) (string, error) {
	if p.Username == "" || p.Password == "" || p.Email == "" {
		return "", fmt.Errorf("username, email and password required")
	}
	if !p.Role.Valid() {
		return "", fmt.Errorf("invalid role %q", p.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.MinCost)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == p.Username || u.Email == p.Email {
			return "", errDuplicateUser
		}
	}
	u := &user{
		ID:             uuid.New().String(),
		Username:       p.Username,
		Email:          p.Email,
		FullName:       p.FullName,
		Role:           p.Role,
		HashedPassword: string(hash),
		CreatedAt:      s.now(),
	}
	s.users[u.Username] = u
	return u.ID, nil
}

var errDuplicateUser = errors.New("Username or email already registered")

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var p models.Profile
	if err := decode(r, &p); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if _, err := s.AddUser(p); err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.RegisterResponse{Message: "User registered successfully", Role: p.Role})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decode(r, &creds); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	s.mu.RLock()
	u, ok := s.users[creds.Username]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(creds.Password)) != nil {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}
	token, err := s.issueToken(u)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	writeJSON(w, http.StatusOK, models.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserRole:    u.Role,
		UserID:      u.ID,
	})
}

func (s *Server) issueToken(u *user) (string, error) {
	claims := jwt.MapClaims{
		"sub":     u.Username,
		"role":    string(u.Role),
		"user_id": u.ID,
		"exp":     s.now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) authenticate(r *http.Request) (*user, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}
	raw := strings.TrimPrefix(h, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return nil, false
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[sub]
	return u, ok
}

func (s *Server) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.authenticate(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		next(w, r, u)
	}
}

func (s *Server) requireRole(role models.Role, next userHandler) http.HandlerFunc {
	return s.requireUser(func(w http.ResponseWriter, r *http.Request, u *user) {
		if u.Role != role {
			writeDetail(w, http.StatusForbidden, fmt.Sprintf("Access denied. %s role required.", role))
			return
		}
		next(w, r, u)
	})
}
