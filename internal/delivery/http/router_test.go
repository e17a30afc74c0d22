package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"mediaccess/config"
	"mediaccess/internal/assistant"
	"mediaccess/internal/delivery/http/handler"
	"mediaccess/internal/delivery/http/middleware"
	"mediaccess/internal/knowledge"
	"mediaccess/internal/login"
	"mediaccess/internal/store"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/jwt"
	"mediaccess/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, req assistant.Request) (string, error) {
	return "generated", nil
}

func (echoGenerator) Stream(_ context.Context, req assistant.Request) <-chan assistant.Chunk {
	ch := make(chan assistant.Chunk, 2)
	ch <- assistant.Chunk{Text: "Hello, "}
	ch <- assistant.Chunk{Text: "operator."}
	close(ch)
	return ch
}

type testServer struct {
	handler http.Handler
	store   *store.Store
	jwt     *jwt.JWTService
}

// silentGenerator answers every call with no text
type silentGenerator struct{}

func (silentGenerator) Generate(context.Context, assistant.Request) (string, error) {
	return "", nil
}

func (silentGenerator) Stream(context.Context, assistant.Request) <-chan assistant.Chunk {
	ch := make(chan assistant.Chunk, 1)
	ch <- assistant.Chunk{Text: ""}
	close(ch)
	return ch
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, echoGenerator{})
}

func newTestServerWith(t *testing.T, gen assistant.Generator) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	var (
		mu sync.Mutex
		n  int
	)
	s := store.New(store.DefaultSeed(fixedNow),
		store.WithClock(func() time.Time { return fixedNow }),
		store.WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("gen-%d", n)
		}),
	)

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "router-test", SessionExpiry: time.Hour})
	v := validator.NewValidator()
	kb := knowledge.MustLoad()
	ai := assistant.New(gen, kb, assistant.Config{Timeout: time.Second}, log, s.Offline)
	sim := login.NewSimulator(login.Delays{}, nil, jwtService, s, log)

	dashboardUsecase := usecase.NewDashboardUsecase(s, log, nil)
	handlers := Handlers{
		Auth:        handler.NewAuthHandler(usecase.NewSessionUsecase(s, log, sim), v),
		Dashboard:   handler.NewDashboardHandler(dashboardUsecase),
		AuditLog:    handler.NewAuditLogHandler(dashboardUsecase),
		User:        handler.NewUserHandler(usecase.NewUserUsecase(s, log), v),
		Patient:     handler.NewPatientHandler(usecase.NewPatientUsecase(s, log), v),
		Trainee:     handler.NewTraineeHandler(usecase.NewTraineeUsecase(s, log, "Prof. Alan Grant"), v),
		Proposal:    handler.NewProposalHandler(usecase.NewProposalUsecase(s, log), v),
		Task:        handler.NewTaskHandler(usecase.NewTaskUsecase(s, log, 0)),
		Publication: handler.NewPublicationHandler(usecase.NewPublicationUsecase(s, log, nil), v),
		Financial:   handler.NewFinancialHandler(usecase.NewFinancialUsecase(log)),
		Simulation:  handler.NewSimulationHandler(usecase.NewSimulationUsecase(s, log)),
		Assistant:   handler.NewAssistantHandler(usecase.NewAssistantUsecase(s, log, ai, kb), v),
		Developer:   handler.NewDeveloperHandler(usecase.NewDeveloperUsecase(s, log), v),
	}

	reg := prometheus.NewRegistry()
	metrics, err := middleware.NewMetricsMiddleware(reg)
	require.NoError(t, err)

	r := NewRouter(handlers, middleware.NewAuthMiddleware(jwtService), middleware.NewCORSMiddleware(), metrics, reg)
	return &testServer{handler: r.Setup(), store: s, jwt: jwtService}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path, role string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set(middleware.RoleHeader, role)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestRouter_Health(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MetricsExposeRequests(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/api/v1/state", "", nil)
	rec, _ := ts.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mediaccess_http_requests_total{code="200",method="GET",route="/api/v1/state"} 1`)
}

func TestRouter_RoleResolution(t *testing.T) {
	ts := newTestServer(t)

	// no header means STAFF
	rec, env := ts.do(t, http.MethodGet, "/api/v1/session/me", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "STAFF", me.Role)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/session/me", "JANITOR", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CapabilityGate(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method, path, role string
		want               int
	}{
		{http.MethodGet, "/api/v1/users", "STAFF", http.StatusForbidden},
		{http.MethodGet, "/api/v1/users", "ADMIN", http.StatusOK},
		{http.MethodGet, "/api/v1/patients", "INVESTOR", http.StatusForbidden},
		{http.MethodGet, "/api/v1/patients", "staff", http.StatusOK},
		{http.MethodGet, "/api/v1/proposals", "PARTNER", http.StatusForbidden},
		{http.MethodGet, "/api/v1/proposals", "INVESTOR", http.StatusOK},
		{http.MethodGet, "/api/v1/financials", "STAFF", http.StatusForbidden},
		{http.MethodGet, "/api/v1/financials", "PARTNER", http.StatusOK},
		{http.MethodGet, "/api/v1/developer/endpoints", "INVESTOR", http.StatusForbidden},
		{http.MethodGet, "/api/v1/developer/endpoints", "PARTNER", http.StatusOK},
		{http.MethodPost, "/api/v1/simulations/patient-surge", "STAFF", http.StatusForbidden},
		{http.MethodGet, "/api/v1/logs/archive", "ADMIN", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.role+" "+tc.method+" "+tc.path, func(t *testing.T) {
			rec, _ := ts.do(t, tc.method, tc.path, tc.role, nil)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRouter_LoginTokenCarriesRole(t *testing.T) {
	ts := newTestServer(t)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/session/login", "", map[string]string{"role": "INVESTOR", "method": "password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		AccessToken string   `json:"access_token"`
		Trail       []string `json:"trail"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.AccessToken)
	assert.Equal(t, []string{"IDLE", "SCANNING", "VERIFIED"}, session.Trail)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	out := httptest.NewRecorder()
	ts.handler.ServeHTTP(out, req)
	assert.Equal(t, http.StatusOK, out.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/proposals", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	out = httptest.NewRecorder()
	ts.handler.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)
}

func TestRouter_LoginValidation(t *testing.T) {
	ts := newTestServer(t)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/session/login", "", map[string]string{"role": "INVESTOR", "method": "retina"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, string(env.Error), "method must be one of")
}

func TestRouter_PatientChartFlow(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodPut, "/api/v1/patients/1/chart", "ADMIN", map[string]string{
		"diagnosis": "Stable",
		"bp":        "130/85",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p, err := ts.store.Patient("1")
	require.NoError(t, err)
	assert.Equal(t, "Vitals Check: BP: 130/85", p.Notes[0].Text)
	assert.Equal(t, "DIAGNOSIS: Stable", p.Notes[1].Text)

	rec, _ = ts.do(t, http.MethodPut, "/api/v1/patients/404/chart", "ADMIN", map[string]string{"note": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/patients", "STAFF", map[string]string{"name": "A", "dob": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ConflictsMapTo409(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodPost, "/api/v1/proposals/2/votes", "INVESTOR", map[string]string{"choice": "yes"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/simulations/resolve", "ADMIN", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/simulations/cyber-attack", "ADMIN", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = ts.do(t, http.MethodPost, "/api/v1/simulations/resolve", "ADMIN", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ConfidentialDocuments(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/documents/proposal", "STAFF", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/documents/proposal", "INVESTOR", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(t, http.MethodGet, "/api/v1/documents/missing", "INVESTOR", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ChatStream(t *testing.T) {
	ts := newTestServer(t)

	body := strings.NewReader(`{"session_id":"s1","message":"status?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/chat/stream", body)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello, operator.", rec.Body.String())
	assert.Equal(t, "false", rec.Result().Trailer.Get(handler.FallbackTrailer))

	transcript, env := ts.do(t, http.MethodGet, "/api/v1/assistant/chat/s1", "", nil)
	require.Equal(t, http.StatusOK, transcript.Code)
	var msgs []assistant.Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	require.Len(t, msgs, 3)
	assert.Equal(t, "Hello, operator.", msgs[2].Text)

	// another role cannot read the same session id
	_, env = ts.do(t, http.MethodGet, "/api/v1/assistant/chat/s1", "ADMIN", nil)
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	assert.Len(t, msgs, 1)
}

func TestRouter_ChatStreamEmptyAnswer(t *testing.T) {
	ts := newTestServerWith(t, silentGenerator{})

	body := strings.NewReader(`{"session_id":"s1","message":"status?"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/chat/stream", body)
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, assistant.EmptyChat, rec.Body.String())
	assert.Equal(t, "false", rec.Result().Trailer.Get(handler.FallbackTrailer))

	_, env := ts.do(t, http.MethodGet, "/api/v1/assistant/chat/s1", "", nil)
	var msgs []assistant.Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	assert.Len(t, msgs, 1)
}

func TestRouter_SLAChecklist(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodGet, "/api/v1/tasks/sla-checks", "STAFF", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := ts.do(t, http.MethodPost, "/api/v1/tasks/sla-checks/3/toggle", "ADMIN", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Checks []struct {
			ID      string `json:"id"`
			Checked bool   `json:"checked"`
		} `json:"checks"`
		SLA struct {
			ChecksDone        int `json:"checks_done"`
			ChecklistProgress int `json:"checklist_progress"`
		} `json:"sla"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.Len(t, out.Checks, 10)
	assert.True(t, out.Checks[2].Checked)
	assert.Equal(t, 4, out.SLA.ChecksDone)
	assert.Equal(t, 40, out.SLA.ChecklistProgress)

	rec, _ = ts.do(t, http.MethodPost, "/api/v1/tasks/sla-checks/99/toggle", "ADMIN", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_DeveloperTryOffline(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodPost, "/api/v1/state/offline/toggle", "", nil)
	rec, env := ts.do(t, http.MethodPost, "/api/v1/developer/try", "ADMIN", map[string]string{"method": "GET", "path": "/api/v1/patients/1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Status int               `json:"status"`
		Body   map[string]string `json:"body"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, http.StatusServiceUnavailable, out.Status)
	assert.Equal(t, "Connection Timeout", out.Body["error"])
}
