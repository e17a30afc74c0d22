package dto

import "mediaccess/internal/domain/entity"

type StateResponse struct {
	Offline        bool                 `json:"offline"`
	SecurityLevel  entity.SecurityLevel `json:"security_level"`
	MobileMenuOpen bool                 `json:"mobile_menu_open"`
	UnreadCount    int                  `json:"unread_count"`
}

type NotificationListResponse struct {
	Notifications []entity.AppNotification `json:"notifications"`
	UnreadCount   int                      `json:"unread_count"`
}

type LogListResponse struct {
	Logs  []entity.SystemLog `json:"logs"`
	Total int                `json:"total"`
}

type ArchivedLogListResponse struct {
	Records []entity.SystemLogRecord `json:"records"`
	Total   int                      `json:"total"`
}
