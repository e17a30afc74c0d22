package store

import (
	"errors"
	"sync"
	"time"

	"mediaccess/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateID       = errors.New("record id already exists")
	ErrInvalidValue      = errors.New("invalid field value")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrProposalClosed    = errors.New("proposal is no longer open for voting")
)

const (
	// LogCap is the hard size of the system log ring buffer
	LogCap = 50

	// DefaultNotificationCap bounds the notification list; oldest entries are dropped
	DefaultNotificationCap = 100
)

// Store is the single authoritative holder of every domain collection.
//
// Each exported mutator runs under one write lock together with the logs and
// notifications it emits. Observers are notified after the lock is released,
// in commit order. An observer must not call back into a mutator.
type Store struct {
	mu         sync.RWMutex
	dispatchMu sync.Mutex

	clock           func() time.Time
	newID           func() string
	notificationCap int
	observers       []Observer

	users         []entity.User
	patients      []entity.Patient
	trainees      []entity.Trainee
	proposals     []entity.BoardProposal
	tasks         []entity.AdminTask
	journals      []entity.JournalArticle
	reports       []entity.SystemReport
	guides        []entity.SystemGuide
	notifications []entity.AppNotification
	logs          []entity.SystemLog
	slaChecks     []entity.SLACheck

	offline        bool
	securityLevel  entity.SecurityLevel
	mobileMenuOpen bool
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for dates and log timestamps
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithIDGenerator overrides the generator used for new record ids
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithNotificationCap sets the maximum number of retained notifications.
// Values below one keep the default.
func WithNotificationCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.notificationCap = n
		}
	}
}

// WithObserver registers an observer for emitted events
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// New creates a Store populated from seed
func New(seed Seed, opts ...Option) *Store {
	s := &Store{
		clock:           time.Now,
		newID:           uuid.NewString,
		notificationCap: DefaultNotificationCap,
		securityLevel:   entity.SecurityLevelLow,
	}
	for _, opt := range opts {
		opt(s)
	}

	seed = seed.clone()
	s.users = seed.Users
	s.patients = seed.Patients
	s.trainees = seed.Trainees
	s.proposals = seed.Proposals
	s.tasks = seed.Tasks
	s.journals = seed.Journals
	s.reports = seed.Reports
	s.guides = seed.Guides
	s.notifications = capSlice(seed.Notifications, s.notificationCap)
	s.logs = capSlice(seed.Logs, LogCap)
	s.slaChecks = seed.SLAChecks

	return s
}

// AddObserver registers an observer after construction
func (s *Store) AddObserver(o Observer) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	s.observers = append(s.observers, o)
}

// Today returns the current calendar date in DateLayout
func (s *Store) Today() string {
	return s.clock().Format(entity.DateLayout)
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.clock()
}

// NewID returns a fresh record id from the configured generator
func (s *Store) NewID() string {
	return s.newID()
}

// tx carries the events produced by one mutation while the write lock is held
type tx struct {
	s      *Store
	op     string
	events []Event
}

// mutate runs fn under the write lock. fn must finish all validation before it
// changes any collection so that a returned error leaves the store untouched.
func (s *Store) mutate(op string, fn func(t *tx) error) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	t := &tx{s: s, op: op}
	err := fn(t)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	t.events = append(t.events, Event{Kind: EventMutation, Operation: op})
	for _, ev := range t.events {
		for _, o := range s.observers {
			o.Observe(ev)
		}
	}
	return nil
}

// read runs fn under the read lock
func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func capSlice[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func prepend[T any](items []T, v ...T) []T {
	out := make([]T, 0, len(items)+len(v))
	out = append(out, v...)
	return append(out, items...)
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	out := make([]T, len(items))
	for i, v := range items {
		if clone != nil {
			v = clone(v)
		}
		out[i] = v
	}
	return out
}
