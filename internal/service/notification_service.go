package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/iemarche/inquiry-service/internal/config"
	"github.com/iemarche/inquiry-service/internal/events"
)

// NotificationService emits acknowledgement notifications for inquiry
// events: staff are notified on submission, requesters on replies. Delivery
// is best-effort; failures are logged by the publisher and never roll back
// the inquiry or response write.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventInquiryCreated, n.handleInquiryCreated)
	n.dispatcher.Subscribe(events.EventInquiryStatusChanged, n.handleInquiryStatusChanged)
	n.dispatcher.Subscribe(events.EventInquiryResponseAdded, n.handleInquiryResponseAdded)
}

func (n *NotificationService) handleInquiryCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryCreated", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInquiryStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryStatusChanged", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleInquiryResponseAdded(ctx context.Context, event events.Event) error {
	n.logger.Info("InquiryResponseAdded", zap.Int64("inquiry_id", event.InquiryID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("inquiry_id", event.InquiryID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("inquiry_id", event.InquiryID),
		zap.String("event_type", string(event.Type)))
}
