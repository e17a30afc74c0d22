package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var ErrUnknownEndpoint = errors.New("endpoint is not documented")

const (
	// APIVersion is the documented gateway version
	APIVersion = "v3.1.0"

	simulatedLatencyMS = 45
)

// Endpoint is one documented gateway route
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	NeedsAuth   bool   `json:"needs_auth"`
}

var endpoints = []Endpoint{
	{
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/token",
		Description: "Generate a JWT bearer token for session access. Requires a valid API Key from the admin panel.",
	},
	{
		Method:      http.MethodGet,
		Path:        "/api/v1/patients/{id}",
		Description: "Retrieve encrypted patient records. Access logs are immutable and audit-ready.",
		NeedsAuth:   true,
	},
	{
		Method:      http.MethodPost,
		Path:        "/api/v1/biometric/verify",
		Description: "Submit raw image data for 1:N facial matching against the master database. Returns match confidence score.",
		NeedsAuth:   true,
	},
}

type DeveloperUsecase interface {
	Endpoints(ctx context.Context) []Endpoint
	TryEndpoint(ctx context.Context, req *dto.TryEndpointRequest) (*dto.TryEndpointResponse, error)
}

type developerUsecase struct {
	store *store.Store
	log   *logrus.Logger
}

func NewDeveloperUsecase(s *store.Store, log *logrus.Logger) DeveloperUsecase {
	return &developerUsecase{store: s, log: log}
}

func (u *developerUsecase) Endpoints(ctx context.Context) []Endpoint {
	return append([]Endpoint(nil), endpoints...)
}

// TryEndpoint returns the canned gateway answer. While offline every call
// times out with a 503.
func (u *developerUsecase) TryEndpoint(ctx context.Context, req *dto.TryEndpointRequest) (*dto.TryEndpointResponse, error) {
	ep, ok := findEndpoint(req.Method, req.Path)
	if !ok {
		return nil, ErrUnknownEndpoint
	}

	if u.store.Offline() {
		return &dto.TryEndpointResponse{
			Status: http.StatusServiceUnavailable,
			Body: map[string]string{
				"error":   "Connection Timeout",
				"message": "Gateway unreachable",
			},
		}, nil
	}

	return &dto.TryEndpointResponse{
		Status:    http.StatusOK,
		LatencyMS: simulatedLatencyMS,
		Body:      u.sample(ep),
	}, nil
}

func (u *developerUsecase) sample(ep Endpoint) interface{} {
	switch ep.Path {
	case "/api/v1/auth/token":
		return map[string]interface{}{
			"token":      "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...",
			"expires_in": 3600,
			"type":       "Bearer",
		}
	case "/api/v1/patients/{id}":
		body := map[string]interface{}{
			"hash":           "sha256:9f86d081884c7d659a2...",
			"status":         "active",
			"encrypted_data": "U2FsdGVkX1+...",
		}
		if ps := u.store.Patients(); len(ps) > 0 {
			body["id"] = ps[0].ID
			body["last_visit"] = ps[0].LastVisit
		}
		return body
	default:
		return map[string]interface{}{
			"match":           true,
			"confidence":      0.987,
			"patient_id":      "pat_12345",
			"processing_time": "0.4s",
		}
	}
}

// findEndpoint matches a documented route. Path parameters match any segment.
func findEndpoint(method, path string) (Endpoint, bool) {
	for _, ep := range endpoints {
		if ep.Method == strings.ToUpper(method) && pathMatches(ep.Path, path) {
			return ep, true
		}
	}
	return Endpoint{}, false
}

func pathMatches(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.HasPrefix(want[i], "{") && strings.HasSuffix(want[i], "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
