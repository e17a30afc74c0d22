package store

import (
	"fmt"

	"mediaccess/internal/domain/entity"
)

// EventKind identifies what an Event carries
type EventKind string

const (
	EventLog          EventKind = "log"
	EventNotification EventKind = "notification"
	EventMutation     EventKind = "mutation"
)

// Event is published to observers after a mutation commits.
// Operation names the store method that produced it.
type Event struct {
	Kind         EventKind               `json:"kind"`
	Operation    string                  `json:"operation"`
	Log          *entity.SystemLog       `json:"log,omitempty"`
	Notification *entity.AppNotification `json:"notification,omitempty"`
}

// Observer receives store events
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}

const justNow = "Just now"

// log prepends a system log entry and truncates the buffer to LogCap
func (t *tx) log(module entity.LogModule, message string, status entity.LogStatus) entity.SystemLog {
	entry := entity.SystemLog{
		ID:        t.s.newID(),
		Timestamp: t.s.clock(),
		Module:    module,
		Message:   message,
		Status:    status,
	}
	t.s.logs = capSlice(prepend(t.s.logs, entry), LogCap)

	ev := entry
	t.events = append(t.events, Event{Kind: EventLog, Operation: t.op, Log: &ev})
	return entry
}

// notify prepends an unread notification and drops the oldest beyond the cap
func (t *tx) notify(kind entity.NotificationType, title, message string) entity.AppNotification {
	n := entity.AppNotification{
		ID:        t.s.newID(),
		Title:     title,
		Message:   message,
		Time:      justNow,
		Type:      kind,
		CreatedAt: t.s.clock(),
	}
	t.s.notifications = capSlice(prepend(t.s.notifications, n), t.s.notificationCap)

	ev := n
	t.events = append(t.events, Event{Kind: EventNotification, Operation: t.op, Notification: &ev})
	return n
}

// AddSystemLog appends an operational log line that is not tied to a
// collection change, such as login or gateway activity.
func (s *Store) AddSystemLog(module entity.LogModule, message string, status entity.LogStatus) (entity.SystemLog, error) {
	if !module.Valid() {
		return entity.SystemLog{}, fmt.Errorf("%w: log module %q", ErrInvalidValue, module)
	}
	if !status.Valid() {
		return entity.SystemLog{}, fmt.Errorf("%w: log status %q", ErrInvalidValue, status)
	}

	var entry entity.SystemLog
	err := s.mutate("AddSystemLog", func(t *tx) error {
		entry = t.log(module, message, status)
		return nil
	})
	return entry, err
}

// Notify emits a notification outside of a collection change
func (s *Store) Notify(kind entity.NotificationType, title, message string) (entity.AppNotification, error) {
	if !kind.Valid() {
		return entity.AppNotification{}, fmt.Errorf("%w: notification type %q", ErrInvalidValue, kind)
	}

	var n entity.AppNotification
	err := s.mutate("Notify", func(t *tx) error {
		n = t.notify(kind, title, message)
		return nil
	})
	return n, err
}

// MarkNotificationRead flips one notification to read. Marking an already
// read notification succeeds without change.
func (s *Store) MarkNotificationRead(id string) (entity.AppNotification, error) {
	var n entity.AppNotification
	err := s.mutate("MarkNotificationRead", func(t *tx) error {
		for i := range t.s.notifications {
			if t.s.notifications[i].ID == id {
				t.s.notifications[i].Read = true
				n = t.s.notifications[i]
				return nil
			}
		}
		return fmt.Errorf("%w: notification %s", ErrNotFound, id)
	})
	return n, err
}

// Notifications returns the notifications newest first
func (s *Store) Notifications() []entity.AppNotification {
	var out []entity.AppNotification
	s.read(func() {
		out = cloneAll(s.notifications, nil)
	})
	return out
}

// Logs returns the system log buffer newest first
func (s *Store) Logs() []entity.SystemLog {
	var out []entity.SystemLog
	s.read(func() {
		out = cloneAll(s.logs, nil)
	})
	return out
}

// ToggleOffline flips the simulated connectivity flag and returns the new value
func (s *Store) ToggleOffline() bool {
	var offline bool
	_ = s.mutate("ToggleOffline", func(t *tx) error {
		t.s.offline = !t.s.offline
		offline = t.s.offline
		if offline {
			t.log(entity.LogModuleNetwork, "Connection Lost. Switching to Local Cache.", entity.LogStatusWarn)
		} else {
			t.log(entity.LogModuleNetwork, "Connection Restored.", entity.LogStatusOK)
		}
		return nil
	})
	return offline
}

// ToggleMobileMenu flips the navigation drawer flag and returns the new value
func (s *Store) ToggleMobileMenu() bool {
	var open bool
	_ = s.mutate("ToggleMobileMenu", func(t *tx) error {
		t.s.mobileMenuOpen = !t.s.mobileMenuOpen
		open = t.s.mobileMenuOpen
		return nil
	})
	return open
}

// Offline reports the simulated connectivity flag
func (s *Store) Offline() bool {
	var v bool
	s.read(func() { v = s.offline })
	return v
}

// SecurityLevel returns the current threat level
func (s *Store) SecurityLevel() entity.SecurityLevel {
	var v entity.SecurityLevel
	s.read(func() { v = s.securityLevel })
	return v
}

// MobileMenuOpen reports the navigation drawer flag
func (s *Store) MobileMenuOpen() bool {
	var v bool
	s.read(func() { v = s.mobileMenuOpen })
	return v
}
