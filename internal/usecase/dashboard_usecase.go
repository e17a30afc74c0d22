package usecase

import (
	"context"
	"errors"

	"mediaccess/internal/delivery/dto"
	"mediaccess/internal/domain/entity"
	"mediaccess/internal/projection"
	"mediaccess/internal/service"
	"mediaccess/internal/store"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrArchiveDisabled      = errors.New("log archive is not configured")
)

type DashboardUsecase interface {
	Dashboard(ctx context.Context, role entity.Role) projection.DashboardStats
	State(ctx context.Context) *dto.StateResponse
	ToggleOffline(ctx context.Context) *dto.StateResponse
	ToggleMobileMenu(ctx context.Context) *dto.StateResponse
	Notifications(ctx context.Context) *dto.NotificationListResponse
	MarkNotificationRead(ctx context.Context, id string) (*entity.AppNotification, error)
	Logs(ctx context.Context) *dto.LogListResponse
	ArchivedLogs(ctx context.Context, module string, limit int) (*dto.ArchivedLogListResponse, error)
}

type dashboardUsecase struct {
	store   *store.Store
	log     *logrus.Logger
	archive service.LogArchiveService
}

// NewDashboardUsecase creates the dashboard use case. archive may be nil when
// no database is configured.
func NewDashboardUsecase(s *store.Store, log *logrus.Logger, archive service.LogArchiveService) DashboardUsecase {
	return &dashboardUsecase{
		store:   s,
		log:     log,
		archive: archive,
	}
}

func (u *dashboardUsecase) Dashboard(ctx context.Context, role entity.Role) projection.DashboardStats {
	return projection.Dashboard(role, u.store.Snapshot())
}

func (u *dashboardUsecase) State(ctx context.Context) *dto.StateResponse {
	return &dto.StateResponse{
		Offline:        u.store.Offline(),
		SecurityLevel:  u.store.SecurityLevel(),
		MobileMenuOpen: u.store.MobileMenuOpen(),
		UnreadCount:    projection.UnreadCount(u.store.Notifications()),
	}
}

func (u *dashboardUsecase) ToggleOffline(ctx context.Context) *dto.StateResponse {
	offline := u.store.ToggleOffline()
	u.log.Infof("Simulated connectivity changed: offline=%t", offline)
	return u.State(ctx)
}

func (u *dashboardUsecase) ToggleMobileMenu(ctx context.Context) *dto.StateResponse {
	u.store.ToggleMobileMenu()
	return u.State(ctx)
}

func (u *dashboardUsecase) Notifications(ctx context.Context) *dto.NotificationListResponse {
	ns := u.store.Notifications()
	return &dto.NotificationListResponse{
		Notifications: ns,
		UnreadCount:   projection.UnreadCount(ns),
	}
}

func (u *dashboardUsecase) MarkNotificationRead(ctx context.Context, id string) (*entity.AppNotification, error) {
	n, err := u.store.MarkNotificationRead(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			u.log.Warnf("Failed to mark notification read: %+v", err)
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (u *dashboardUsecase) Logs(ctx context.Context) *dto.LogListResponse {
	logs := u.store.Logs()
	return &dto.LogListResponse{Logs: logs, Total: len(logs)}
}

func (u *dashboardUsecase) ArchivedLogs(ctx context.Context, module string, limit int) (*dto.ArchivedLogListResponse, error) {
	if u.archive == nil {
		return nil, ErrArchiveDisabled
	}

	m := entity.LogModule(module)
	if m != "" && !m.Valid() {
		return nil, store.ErrInvalidValue
	}

	records, err := u.archive.Recent(ctx, m, limit)
	if err != nil {
		u.log.Warnf("Failed to get archived logs: %+v", err)
		return nil, err
	}
	return &dto.ArchivedLogListResponse{Records: records, Total: len(records)}, nil
}
