package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a gateway failure.
type Kind int

const (
	KindNetwork    Kind = iota // transport failure or unreadable response
	KindAuth                   // bad credentials or rejected token
	KindValidation             // malformed payload
	KindServer                 // any other non-2xx
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "network"
	}
}

// Error is the single error type every Client method returns.
type Error struct {
	Kind   Kind
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s error (status %d): %s", e.Kind, e.Status, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error (status %d)", e.Kind, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// DetailOr returns the backend-provided detail of err, or fallback.
func DetailOr(err error, fallback string) string {
	var ge *Error
	if errors.As(err, &ge) && ge.Detail != "" {
		return ge.Detail
	}
	return fallback
}

// IsKind reports whether err is a gateway error of kind k.
func IsKind(err error, k Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == k
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// parseDetail reads {"detail": "..."} or FastAPI-style {"detail": [{"msg": ...}]}.
func parseDetail(body []byte) string {
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if len(env.Detail) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(env.Detail, &s) == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(env.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
