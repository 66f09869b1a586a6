package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"dentaldesk/internal/models"
	"dentaldesk/internal/utils"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client issues one request per backend endpoint. It does not retry and
// uses the transport's default timeouts.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     *utils.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithLogger(l *utils.Logger) Option { return func(c *Client) { c.log = l } }

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		tokens:  tokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", false, creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, p models.Profile) (models.RegisterResponse, error) {
	var out models.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/api/register", false, p, &out)
	return out, err
}

func (c *Client) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	err := c.do(ctx, http.MethodGet, "/api/patients", true, nil, &out)
	return out, err
}

func (c *Client) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	err := c.do(ctx, http.MethodGet, "/api/appointments", true, nil, &out)
	return out, err
}

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", true, nil, &out)
	return out, err
}

func (c *Client) CreatePatient(ctx context.Context, p models.PatientForm) (models.Patient, error) {
	var out models.Patient
	err := c.do(ctx, http.MethodPost, "/api/patients", true, p, &out)
	return out, err
}

func (c *Client) CreateAppointment(ctx context.Context, a models.AppointmentForm) (models.Appointment, error) {
	var out models.Appointment
	err := c.do(ctx, http.MethodPost, "/api/appointments", true, a, &out)
	return out, err
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus, note string) (models.Appointment, error) {
	var out models.Appointment
	body := models.StatusUpdate{Status: status, Notes: note}
	err := c.do(ctx, http.MethodPut, "/api/appointments/"+url.PathEscape(id), true, body, &out)
	return out, err
}

// SendChatMessage posts text; patientID is omitted from the body when empty.
func (c *Client) SendChatMessage(ctx context.Context, text, patientID string) (models.ChatResponse, error) {
	var out models.ChatResponse
	body := models.ChatRequest{Message: text, PatientID: patientID}
	err := c.do(ctx, http.MethodPost, "/api/chat", true, body, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindNetwork, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warnf("%s %s: %v", method, path, err)
		return &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()
	c.log.Infof("%s %s -> %d", method, path, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:   kindForStatus(resp.StatusCode),
			Status: resp.StatusCode,
			Detail: parseDetail(data),
		}
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindNetwork, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
