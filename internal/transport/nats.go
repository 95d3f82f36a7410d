package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avvvet/hangoutbot/internal/config"
	"github.com/avvvet/hangoutbot/internal/models"
	"github.com/avvvet/hangoutbot/internal/prompts"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Responder produces the reply for one chat message.
type Responder interface {
	Reply(ctx context.Context, request *models.ChatRequest) *models.ChatResponse
}

type NATSTransport struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	config  *config.Config
	handler Responder
	logger  *zap.Logger
}

func NewNATSTransport(cfg *config.Config, handler Responder, logger *zap.Logger) (*NATSTransport, error) {
	logger = logger.With(zap.String("component", "nats"))

	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // Infinite reconnects
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("disconnected from NATS", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("reconnected to NATS", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("connected to NATS", zap.String("url", cfg.NatsURL))

	return &NATSTransport{
		conn:    conn,
		config:  cfg,
		handler: handler,
		logger:  logger,
	}, nil
}

func (nt *NATSTransport) Start() error {
	sub, err := nt.conn.Subscribe(nt.config.NatsRequestSubject, nt.handleChatRequest)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", nt.config.NatsRequestSubject, err)
	}
	nt.sub = sub

	nt.logger.Info("subscribed", zap.String("subject", nt.config.NatsRequestSubject))
	return nil
}

func (nt *NATSTransport) handleChatRequest(msg *nats.Msg) {
	response := nt.process(msg.Data)

	if err := nt.sendResponse(msg, response); err != nil {
		nt.logger.Error("failed to send response",
			zap.String("session_id", response.SessionID),
			zap.String("request_id", response.RequestID),
			zap.Error(err),
		)
	}
}

// process decodes one request and runs it through the handler under the
// request timeout.
func (nt *NATSTransport) process(data []byte) *models.ChatResponse {
	requestID := uuid.NewString()

	var request models.ChatRequest
	if err := json.Unmarshal(data, &request); err != nil {
		nt.logger.Warn("invalid request", zap.String("request_id", requestID), zap.Error(err))
		return errorResponse(&request, requestID, models.ErrorParseError, "Invalid request format")
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.RequestTimeout)
	defer cancel()

	response := nt.handler.Reply(ctx, &request)
	if ctx.Err() == context.DeadlineExceeded {
		// the turn is already committed, so the reply still goes out
		nt.logger.Warn("request exceeded timeout",
			zap.String("request_id", requestID),
			zap.String("session_id", request.SessionID),
			zap.Duration("timeout", nt.config.RequestTimeout),
		)
	}

	response.RequestID = requestID
	return response
}

func (nt *NATSTransport) sendResponse(msg *nats.Msg, response *models.ChatResponse) error {
	responseData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err := msg.Respond(responseData); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	nt.logger.Debug("response sent",
		zap.String("session_id", response.SessionID),
		zap.String("request_id", response.RequestID),
		zap.String("status", response.Status),
	)
	return nil
}

func errorResponse(request *models.ChatRequest, requestID, errorCode, errorMessage string) *models.ChatResponse {
	return &models.ChatResponse{
		SessionID:    request.SessionID,
		RequestID:    requestID,
		Reply:        prompts.ErrorText,
		Status:       models.StatusError,
		ErrorCode:    &errorCode,
		ErrorMessage: &errorMessage,
	}
}

func (nt *NATSTransport) Close() error {
	if nt.sub != nil {
		if err := nt.sub.Drain(); err != nil {
			nt.logger.Warn("failed to drain subscription", zap.Error(err))
		}
	}
	if nt.conn != nil {
		nt.conn.Close()
		nt.logger.Info("NATS connection closed")
	}
	return nil
}
