// Package handler contains the Pub/Sub push handler of the notifier worker.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"

	"pgbee/config"
	deliverycontext "pgbee/internal/delivery/context"
	"pgbee/internal/domain/constants"
	"pgbee/internal/domain/service"
	"pgbee/internal/errors"
	"pgbee/internal/infra/notification"
	"pgbee/internal/infra/pubsub"
	"pgbee/internal/usecase"
)

// tokenValidator matches idtoken.Validate.
type tokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler turns enquiry events pushed by Pub/Sub into owner notifications.
//
// Status codes drive Pub/Sub redelivery: 503 asks for a retry, anything in
// the 2xx range acknowledges, and 4xx drops a message that can never succeed.
type PushHandler struct {
	verifyPushAuth bool
	audience       string
	validate       tokenValidator
	notifyUC       usecase.EnquiryNotificationUsecase
	logger         *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	NotifyUC usecase.EnquiryNotificationUsecase
}

// NewPushHandler verifies push OIDC tokens only for the google provider
// outside development.
func NewPushHandler(params PushHandlerParams) *PushHandler {
	ps := params.Config.PubSub
	verify := ps != nil &&
		ps.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	audience := ""
	if ps != nil {
		audience = ps.PushAudience
	}

	return &PushHandler{
		verifyPushAuth: verify,
		audience:       audience,
		validate:       idtoken.Validate,
		notifyUC:       params.NotifyUC,
		logger:         params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg pubsub.PushMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	event, err := pushMsg.EnquiryEvent()
	if err != nil {
		h.logger.Error("[Worker] Malformed enquiry event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusBadRequest)
	}

	if event.EventType != "" && event.EventType != constants.EventTypeEnquiryCreated {
		h.logger.Info("[Worker] Ignoring event", slog.String("event_type", event.EventType))

		return c.NoContent(http.StatusNoContent)
	}

	requestID := extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing enquiry event",
		slog.String("enquiry_id", event.EnquiryID),
		slog.String("owner_id", event.OwnerID),
		slog.String("message_id", pushMsg.Message.MessageID),
	)

	messageID, err := h.notifyUC.NotifyOwner(ctx, &usecase.EnquiryEventInput{
		EnquiryID:  event.EnquiryID,
		HostelID:   event.HostelID,
		HostelName: event.HostelName,
		OwnerID:    event.OwnerID,
		StudentID:  event.StudentID,
	})
	if err != nil {
		retry := isRetryable(err)
		reqLogger.Error("[Worker] Failed to notify owner",
			slog.String("enquiry_id", event.EnquiryID),
			slog.Any("error", err),
			slog.Bool("retryable", retry),
		)

		if retry {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Enquiry event processed",
		slog.String("enquiry_id", event.EnquiryID),
		slog.String("fcm_message_id", messageID),
	)

	return c.NoContent(http.StatusOK)
}

// isRetryable reports whether a later delivery attempt could succeed.
func isRetryable(err error) bool {
	return notification.IsRetryable(err) || errors.IsAny(err, context.DeadlineExceeded, context.Canceled)
}

// extractRequestID prefers message attributes, then the event payload, then
// the X-Request-Id header, and finally generates one.
func extractRequestID(ctx context.Context, pushMsg *pubsub.PushMessage, event *service.EnquiryEvent) string {
	if requestID := pushMsg.Message.Attributes[pubsub.AttrRequestID]; requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// verifyPubSubToken checks the OIDC token Pub/Sub attaches to push requests.
// Without a configured audience the endpoint URL is expected.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	audience := h.audience
	if audience == "" {
		scheme := "https"
		if req.TLS == nil {
			scheme = "http"
		}
		audience = fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
	}

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
