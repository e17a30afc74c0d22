package login

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mediaccess/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownMethod     = errors.New("unknown login method")
	ErrCameraUnavailable = errors.New("camera unavailable")
)

// State is the progress of one login attempt
type State string

const (
	StateIdle     State = "IDLE"
	StateScanning State = "SCANNING"
	StateVerified State = "VERIFIED"
	StateFailed   State = "FAILED"
)

// Method is how the user proves identity on the login screen
type Method string

const (
	MethodFace        Method = "face"
	MethodFingerprint Method = "fingerprint"
	MethodPassword    Method = "password"
)

// ParseMethod accepts the three login methods. "finger" is an alias of fingerprint.
func ParseMethod(s string) (Method, error) {
	switch s {
	case string(MethodFace):
		return MethodFace, nil
	case string(MethodFingerprint), "finger":
		return MethodFingerprint, nil
	case string(MethodPassword):
		return MethodPassword, nil
	}
	return "", ErrUnknownMethod
}

// Delays is how long each method scans before verifying
type Delays struct {
	Face        time.Duration
	FaceOffline time.Duration
	Fingerprint time.Duration
	Password    time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Face:        3 * time.Second,
		FaceOffline: 1500 * time.Millisecond,
		Fingerprint: 2 * time.Second,
		Password:    time.Second,
	}
}

func (d Delays) scan(m Method, offline bool) time.Duration {
	switch m {
	case MethodFace:
		if offline {
			return d.FaceOffline
		}
		return d.Face
	case MethodFingerprint:
		return d.Fingerprint
	default:
		return d.Password
	}
}

// Camera is the capture device behind face scans
type Camera interface {
	Open(ctx context.Context) (release func(), err error)
}

// StaticCamera is a camera whose availability is fixed
type StaticCamera bool

func (c StaticCamera) Open(context.Context) (func(), error) {
	if !c {
		return nil, ErrCameraUnavailable
	}
	return func() {}, nil
}

// TokenIssuer signs the session token handed out on success
type TokenIssuer interface {
	GenerateSessionToken(role entity.Role, method string) (string, time.Time, error)
}

// AuditLog receives an AUTH entry for every finished attempt
type AuditLog interface {
	AddSystemLog(module entity.LogModule, message string, status entity.LogStatus) (entity.SystemLog, error)
}

// Result describes one finished attempt. Trail lists every state visited.
type Result struct {
	State     State       `json:"state"`
	Trail     []State     `json:"trail"`
	Role      entity.Role `json:"role"`
	Method    Method      `json:"method"`
	Token     string      `json:"token,omitempty"`
	ExpiresAt time.Time   `json:"expires_at,omitempty"`
	Message   string      `json:"message,omitempty"`
}

const deniedMessage = "Biometric Access Denied"

// Simulator runs the biometric login ceremony. Attempts are independent,
// so one Simulator serves any number of concurrent clients.
type Simulator struct {
	delays Delays
	camera Camera
	issuer TokenIssuer
	audit  AuditLog
	log    *logrus.Logger
}

func NewSimulator(delays Delays, camera Camera, issuer TokenIssuer, audit AuditLog, log *logrus.Logger) *Simulator {
	if camera == nil {
		camera = StaticCamera(true)
	}
	return &Simulator{
		delays: delays,
		camera: camera,
		issuer: issuer,
		audit:  audit,
		log:    log,
	}
}

// Authenticate walks IDLE, SCANNING and then VERIFIED or FAILED.
//
// Offline face scans skip the camera. Cancelling ctx while scanning returns
// ctx.Err() and the attempt never reaches FAILED.
func (s *Simulator) Authenticate(ctx context.Context, role entity.Role, method Method, offline bool) (Result, error) {
	if !role.Valid() {
		return Result{}, entity.ErrInvalidRole
	}
	method, err := ParseMethod(string(method))
	if err != nil {
		return Result{}, err
	}

	res := Result{State: StateIdle, Trail: []State{StateIdle}, Role: role, Method: method}
	res.enter(StateScanning)

	if method == MethodFace && !offline {
		release, err := s.camera.Open(ctx)
		if err != nil {
			s.log.Warnf("Failed to open camera: %+v", err)
			res.enter(StateFailed)
			res.Message = deniedMessage
			s.record(fmt.Sprintf("Login denied for %s: camera unavailable", role), entity.LogStatusErr)
			return res, nil
		}
		defer release()
	}

	timer := time.NewTimer(s.delays.scan(method, offline))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return res, ctx.Err()
	}

	token, expiresAt, err := s.issuer.GenerateSessionToken(role, string(method))
	if err != nil {
		s.log.Warnf("Failed to generate session token: %+v", err)
		return res, err
	}

	res.enter(StateVerified)
	res.Token = token
	res.ExpiresAt = expiresAt
	s.record(fmt.Sprintf("%s login verified via %s", role, method), entity.LogStatusOK)
	return res, nil
}

func (r *Result) enter(st State) {
	r.State = st
	r.Trail = append(r.Trail, st)
}

func (s *Simulator) record(message string, status entity.LogStatus) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.AddSystemLog(entity.LogModuleAuth, message, status); err != nil {
		s.log.Warnf("Failed to record login attempt: %+v", err)
	}
}
