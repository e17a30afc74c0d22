package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"mediaccess/internal/domain/entity"
	"mediaccess/internal/repository"
	"mediaccess/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func logEvent(op, message string) store.Event {
	return store.Event{
		Kind:      store.EventLog,
		Operation: op,
		Log: &entity.SystemLog{
			ID:        "log-" + op,
			Timestamp: time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC),
			Module:    entity.LogModuleSec,
			Message:   message,
			Status:    entity.LogStatusErr,
		},
	}
}

// ---------------------------------------------------------------------------
// EventDispatcher
// ---------------------------------------------------------------------------

type recordingSink struct {
	mu     sync.Mutex
	events []store.Event
	err    error
	block  chan struct{}
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Handle(_ context.Context, ev store.Event) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) operations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		ops = append(ops, ev.Operation)
	}
	return ops
}

func TestEventDispatcher_DeliversInOrderAndDrainsOnStop(t *testing.T) {
	sink := &recordingSink{}
	d := NewEventDispatcher(quietLogger(), 16, sink)

	for _, op := range []string{"a", "b", "c"} {
		d.Observe(store.Event{Kind: store.EventMutation, Operation: op})
	}
	d.Stop()
	d.Stop()

	assert.Equal(t, []string{"a", "b", "c"}, sink.operations())
}

func TestEventDispatcher_SinkErrorDoesNotStopDelivery(t *testing.T) {
	failing := &recordingSink{err: errors.New("down")}
	ok := &recordingSink{}
	d := NewEventDispatcher(quietLogger(), 4, failing, ok)

	d.Observe(store.Event{Kind: store.EventMutation, Operation: "x"})
	d.Stop()

	assert.Equal(t, []string{"x"}, failing.operations())
	assert.Equal(t, []string{"x"}, ok.operations())
}

func TestEventDispatcher_DropsWhenFull(t *testing.T) {
	sink := &recordingSink{block: make(chan struct{})}
	d := NewEventDispatcher(quietLogger(), 1, sink)

	// first is picked up by the worker and blocks, second fills the queue
	d.Observe(store.Event{Operation: "1"})
	require.Eventually(t, func() bool { return len(d.queue) == 0 }, time.Second, time.Millisecond)
	d.Observe(store.Event{Operation: "2"})
	d.Observe(store.Event{Operation: "3"})

	assert.Equal(t, int64(1), d.Dropped())

	close(sink.block)
	d.Stop()
	assert.Equal(t, []string{"1", "2"}, sink.operations())
}

func TestEventDispatcher_WiredToStore(t *testing.T) {
	sink := &recordingSink{}
	d := NewEventDispatcher(quietLogger(), 16, sink)
	s := store.New(store.Seed{}, store.WithObserver(d))

	_, err := s.AddSystemLog(entity.LogModuleAPI, "ping", entity.LogStatusOK)
	require.NoError(t, err)
	d.Stop()

	assert.Equal(t, []string{"AddSystemLog", "AddSystemLog"}, sink.operations())
	assert.Equal(t, store.EventLog, sink.events[0].Kind)
	assert.Equal(t, store.EventMutation, sink.events[1].Kind)
}

// ---------------------------------------------------------------------------
// LogArchiveService
// ---------------------------------------------------------------------------

func setupArchive(t *testing.T) (LogArchiveService, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewLogArchiveService(db, quietLogger(), repository.NewSystemLogArchiveRepository()), mock
}

func TestLogArchive_ArchivesLogEvents(t *testing.T) {
	svc, mock := setupArchive(t)

	mock.ExpectQuery(`INSERT INTO "system_log_archive"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := svc.Handle(context.Background(), logEvent("TriggerCyberAttack", "DDoS Attack Signature detected on Port 443"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogArchive_IgnoresOtherEvents(t *testing.T) {
	svc, mock := setupArchive(t)

	require.NoError(t, svc.Handle(context.Background(), store.Event{Kind: store.EventMutation, Operation: "UpdateUser"}))
	require.NoError(t, svc.Handle(context.Background(), store.Event{
		Kind:         store.EventNotification,
		Notification: &entity.AppNotification{ID: "n1"},
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogArchive_PropagatesDBError(t *testing.T) {
	svc, mock := setupArchive(t)

	mock.ExpectQuery(`INSERT INTO "system_log_archive"`).WillReturnError(errors.New("disk full"))

	err := svc.Handle(context.Background(), logEvent("AddSystemLog", "x"))
	assert.Error(t, err)
}

func TestLogArchive_Recent(t *testing.T) {
	svc, mock := setupArchive(t)

	mock.ExpectQuery(`SELECT \* FROM "system_log_archive" ORDER BY`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "entry_id"}).AddRow(1, "log-1"))
	mock.ExpectQuery(`SELECT \* FROM "system_log_archive" WHERE module = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "entry_id", "module"}).AddRow(2, "log-2", "SEC"))

	all, err := svc.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	sec, err := svc.Recent(context.Background(), entity.LogModuleSec, 5)
	require.NoError(t, err)
	require.Len(t, sec, 1)
	assert.Equal(t, "SEC", sec[0].Module)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ---------------------------------------------------------------------------
// RedisBroadcaster
// ---------------------------------------------------------------------------

type fakePublisher struct {
	channel  string
	messages [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	p.channel = channel
	if b, ok := message.([]byte); ok {
		p.messages = append(p.messages, b)
	}
	return redis.NewIntResult(1, p.err)
}

func TestRedisBroadcaster_PublishesJSON(t *testing.T) {
	pub := &fakePublisher{}
	b := NewRedisBroadcaster(pub, "", quietLogger())

	require.NoError(t, b.Handle(context.Background(), logEvent("TriggerCyberAttack", "DDoS")))
	require.NoError(t, b.Handle(context.Background(), store.Event{Kind: store.EventMutation, Operation: "TriggerCyberAttack"}))

	assert.Equal(t, DefaultBroadcastChannel, pub.channel)
	require.Len(t, pub.messages, 1)

	var got store.Event
	require.NoError(t, json.Unmarshal(pub.messages[0], &got))
	assert.Equal(t, store.EventLog, got.Kind)
	assert.Equal(t, "DDoS", got.Log.Message)
}

func TestRedisBroadcaster_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection reset")}
	b := NewRedisBroadcaster(pub, "custom", quietLogger())

	err := b.Handle(context.Background(), store.Event{
		Kind:         store.EventNotification,
		Notification: &entity.AppNotification{ID: "n1", Type: entity.NotificationWarning},
	})
	assert.ErrorContains(t, err, "publish to custom")
}

// ---------------------------------------------------------------------------
// StoreMetrics
// ---------------------------------------------------------------------------

func TestStoreMetrics_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewStoreMetrics(reg)
	require.NoError(t, err)

	s := store.New(store.Seed{}, store.WithObserver(m))
	_, err = s.Notify(entity.NotificationWarning, "Heads up", "Something happened")
	require.NoError(t, err)
	_, err = s.AddSystemLog(entity.LogModuleSec, "probe", entity.LogStatusWarn)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("Notify")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.mutations.WithLabelValues("AddSystemLog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logs.WithLabelValues("SEC", "WARN")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("warning")))
}

func TestStoreMetrics_DoubleRegisterFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewStoreMetrics(reg)
	require.NoError(t, err)

	_, err = NewStoreMetrics(reg)
	assert.Error(t, err)
}
