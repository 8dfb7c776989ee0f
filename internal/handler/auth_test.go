package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/internal/event"
	"github.com/taskdeck/taskdeck/internal/repository"
	"github.com/taskdeck/taskdeck/internal/service"
	"github.com/taskdeck/taskdeck/internal/testdb"
)

// captureSender keeps sent emails so tests can dig out the raw token.
type captureSender struct {
	bodies []string
}

func (s *captureSender) Send(to, subject, htmlBody string) error {
	s.bodies = append(s.bodies, htmlBody)
	return nil
}

func (s *captureSender) lastRawToken(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, s.bodies)

	body := s.bodies[len(s.bodies)-1]
	marker := "/verify-email/"
	idx := strings.Index(body, marker)
	require.GreaterOrEqual(t, idx, 0)
	start := idx + len(marker)
	return body[start : start+64]
}

func newAuthHandlerFixture(t *testing.T) (*authHandler, *captureSender) {
	t.Helper()

	conn := testdb.New(t)
	users := repository.NewUserRepository(conn)
	tokens := repository.NewTokenRepository(conn)

	sender := &captureSender{}
	dispatcher := event.NewDispatcher()
	mailer := service.NewRegistrationMailer(sender, "https://taskdeck.test", "Taskdeck")
	dispatcher.SubscribeUserRegistered(mailer.HandleUserRegistered)

	authService := service.NewAuthService(conn, users, tokens, dispatcher, 24*time.Hour)
	return NewAuthHandler(authService), sender
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	h, _ := newAuthHandlerFixture(t)

	rec := postJSON(t, h.Register, "/register/",
		`{"login":"alice","password":"pw123456","email":"a@x.com"}`)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body["verification_status"])
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h, _ := newAuthHandlerFixture(t)

	rec := postJSON(t, h.Register, "/register/",
		`{"login":"alice","password":"pw123456","email":"a@x.com"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = postJSON(t, h.Register, "/register/",
		`{"login":"bob","password":"pw123456","email":"a@x.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestAuthHandler_Register_ValidationErrors(t *testing.T) {
	h, _ := newAuthHandlerFixture(t)

	rec := postJSON(t, h.Register, "/register/",
		`{"login":"","password":"short","email":"bad"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "login")
	assert.Contains(t, problem.Errors, "password")
	assert.Contains(t, problem.Errors, "email")
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	h, _ := newAuthHandlerFixture(t)

	rec := postJSON(t, h.Register, "/register/", `not json`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	h, sender := newAuthHandlerFixture(t)

	rec := postJSON(t, h.Register, "/register/",
		`{"login":"alice","password":"pw123456","email":"a@x.com"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rawToken := sender.lastRawToken(t)

	verify := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/verify-email/"+token, nil)
		req.SetPathValue("token", token)
		rec := httptest.NewRecorder()
		h.VerifyEmail(rec, req)
		return rec
	}

	rec = verify(rawToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])

	// Replay is rejected.
	rec = verify(rawToken)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Detail, "already been used")

	// Unknown tokens are rejected too.
	rec = verify("deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_ResendVerification_UnknownEmail(t *testing.T) {
	h, _ := newAuthHandlerFixture(t)

	rec := postJSON(t, h.ResendVerification, "/resend-verification",
		`{"email":"nobody@x.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	h, _ := newAuthHandlerFixture(t)

	rec := postJSON(t, h.Register, "/register/",
		`{"login":"alice","password":"pw123456","email":"a@x.com"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec = postJSON(t, h.Login, "/auth/", `{"login":"alice","password":"pw123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	rec = postJSON(t, h.Login, "/auth/", `{"login":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
