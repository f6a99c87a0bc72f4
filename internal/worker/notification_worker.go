package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/hr-portal/internal/service"
)

// StartNotificationWorker subscribes the notification relay to directory events.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification relay registered")
	}
}
