package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentaldesk/internal/app"
	"dentaldesk/internal/gateway"
	"dentaldesk/internal/models"
	"dentaldesk/internal/session"
	"dentaldesk/internal/stubapi"
)

func newDashboard(t *testing.T) *app.Dashboard {
	t.Helper()
	backend := stubapi.NewServer("cli-test")
	_, err := backend.AddUser(models.Profile{Username: "doc", Password: "pw", Email: "doc@x.io", Role: models.RoleDoctor})
	require.NoError(t, err)
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	sessions := session.NewStore(session.NewMemoryStorage())
	return app.NewDashboard(gateway.New(srv.URL, sessions), sessions)
}

func run(t *testing.T, d *app.Dashboard, lines ...string) {
	t.Helper()
	var out bytes.Buffer
	for _, l := range lines {
		quit, err := execute(context.Background(), d, l, &out)
		require.NoError(t, err, l)
		require.False(t, quit, l)
	}
}

func TestDoctorSession(t *testing.T) {
	d := newDashboard(t)
	run(t, d,
		"set username doc",
		"set password pw",
		"submit",
	)
	require.True(t, d.State().IsDoctor(), d.State().Notice)

	run(t, d,
		"new",
		"set name Ann Lee",
		"set email ann@x.io",
		"set phone 555 0100",
		"set dob 1990-01-01",
		"submit",
	)
	st := d.State()
	assert.Equal(t, "Patient created successfully!", st.Notice)
	require.Len(t, st.Patients, 1)
	assert.Equal(t, "Ann Lee", st.Patients[0].Name)
	assert.Equal(t, "555 0100", st.Patients[0].Phone)

	run(t, d, "ok", "select "+st.Patients[0].ID, "chat  how is recovery?")
	st = d.State()
	assert.Empty(t, st.Notice)
	require.Len(t, st.Chat, 2)
	assert.Equal(t, "how is recovery?", st.Chat[0].Content)

	run(t, d, "logout")
	assert.Equal(t, app.ViewLogin, d.State().View)
}

func TestCommandErrors(t *testing.T) {
	d := newDashboard(t)
	ctx := context.Background()
	var out bytes.Buffer

	_, err := execute(ctx, d, "frobnicate", &out)
	assert.ErrorIs(t, err, errUnknownCommand)

	_, err = execute(ctx, d, "set colour blue", &out)
	assert.ErrorIs(t, err, models.ErrUnknownField)

	_, err = execute(ctx, d, "confirm a1", &out)
	assert.ErrorIs(t, err, session.ErrNoSession)

	quit, err := execute(ctx, d, "help", &out)
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "Commands:")

	quit, _ = execute(ctx, d, "quit", &out)
	assert.True(t, quit)
}

func TestAuthViewSwitching(t *testing.T) {
	d := newDashboard(t)
	run(t, d, "register")
	assert.Equal(t, app.ViewRegister, d.State().View)
	run(t, d, "login")
	assert.Equal(t, app.ViewLogin, d.State().View)
}

func TestNextCommandDismissesNotice(t *testing.T) {
	d := newDashboard(t)
	run(t, d, "set username doc", "set password wrong", "submit")
	assert.Equal(t, "Login failed: Incorrect username or password", d.State().Notice)

	run(t, d, "set password pw")
	assert.Empty(t, d.State().Notice)
	assert.Equal(t, "pw", d.State().AuthForm.Password)

	run(t, d, "submit", "new", "set name Ann", "submit")
	assert.Contains(t, d.State().Notice, "Failed to create patient")
	run(t, d, "")
	assert.NotEmpty(t, d.State().Notice, "blank line keeps the notice")
	run(t, d, "ok")
	assert.Empty(t, d.State().Notice)
}
