package worker

import (
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/service"
)

// StartNotificationWorker wires the notification service into the event
// stream. Delivery is synchronous today; this is the seam where a real
// queue would go.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		logger.Warn("notification service not configured, skipping handler registration")
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification handlers registered")
}
