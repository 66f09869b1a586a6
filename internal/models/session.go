package models

// Role is the account type chosen at registration.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RolePatient || r == RoleDoctor }

// Title is the capitalised form used in headings ("Doctor", "Patient").
func (r Role) Title() string {
	if r == RoleDoctor {
		return "Doctor"
	}
	return "Patient"
}

// Session is the authenticated identity held by the client.
// Token present <=> Role and UserID present.
type Session struct {
	Token  string `json:"token"`
	Role   Role   `json:"userRole"`
	UserID string `json:"userId"`
}

func (s Session) Valid() bool {
	return s.Token != "" && s.Role != "" && s.UserID != ""
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Profile is the registration payload.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserRole    Role   `json:"user_role"`
	UserID      string `json:"user_id"`
}

// Session converts a login response into a client session.
func (r LoginResponse) Session() Session {
	return Session{Token: r.AccessToken, Role: r.UserRole, UserID: r.UserID}
}

type RegisterResponse struct {
	Message string `json:"message"`
	Role    Role   `json:"role"`
}
