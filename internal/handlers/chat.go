package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avvvet/hangoutbot/internal/corpus"
	"github.com/avvvet/hangoutbot/internal/dialogue"
	"github.com/avvvet/hangoutbot/internal/intent"
	"github.com/avvvet/hangoutbot/internal/memory"
	"github.com/avvvet/hangoutbot/internal/metrics"
	"github.com/avvvet/hangoutbot/internal/models"
	"github.com/avvvet/hangoutbot/internal/prompts"
	"github.com/avvvet/hangoutbot/internal/venue"
	"go.uber.org/zap"
)

// DefaultTopN is how many venues a ranking question lists.
const DefaultTopN = 5

// ChatHandler answers one message per call. Every outcome, failures
// included, becomes a reply string; nothing is returned as an error.
type ChatHandler struct {
	classifier *intent.Classifier
	sessions   *memory.Manager
	venues     *venue.Repository
	topN       int
	logger     *zap.Logger
}

func NewChatHandler(classifier *intent.Classifier, sessions *memory.Manager, venues *venue.Repository, topN int, logger *zap.Logger) *ChatHandler {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &ChatHandler{
		classifier: classifier,
		sessions:   sessions,
		venues:     venues,
		topN:       topN,
		logger:     logger.With(zap.String("component", "chat")),
	}
}

// Reply runs one turn of the conversation identified by request.SessionID.
func (h *ChatHandler) Reply(ctx context.Context, request *models.ChatRequest) *models.ChatResponse {
	start := time.Now()
	defer func() {
		metrics.ReplyDuration.WithLabelValues(h.classifier.ScorerName()).Observe(time.Since(start).Seconds())
	}()

	if err := h.validateRequest(request); err != nil {
		return h.createErrorResponse(request, models.ErrorInvalidRequest, err.Error())
	}

	log := h.logger.With(zap.String("session_id", request.SessionID))
	session := h.loadSession(ctx, request, log)
	prev := session.State

	input := strings.TrimSpace(request.Message)
	if input == "" {
		metrics.MessagesTotal.WithLabelValues(corpus.Unknown.String()).Inc()
		return h.createResponse(request, prompts.NotUnderstoodText, corpus.Unknown, prev.Stage)
	}

	cls := h.classifier.Classify(ctx, input, prev.InProgress())
	next, action := dialogue.Step(prev, cls.Intent)

	var reply string
	if action == dialogue.ActionNone {
		reply = h.answerIntent(cls, input, log)
	} else {
		metrics.DialogueActions.WithLabelValues(action.String()).Inc()
		reply = h.answerAction(action, next, log)
	}

	if prev.InProgress() || next.InProgress() {
		session.State = next
		if err := h.sessions.Commit(ctx, session); err != nil {
			metrics.SessionStoreErrors.WithLabelValues("commit").Inc()
			log.Error("failed to save dialogue state", zap.Error(err))
		}
	}

	metrics.MessagesTotal.WithLabelValues(cls.Intent.String()).Inc()
	if !cls.Confident {
		metrics.LowConfidenceTotal.WithLabelValues(h.classifier.ScorerName()).Inc()
	}

	log.Info("message answered",
		zap.String("intent", cls.Intent.String()),
		zap.String("matched", cls.Match.Phrase),
		zap.Float64("score", cls.Match.Score),
		zap.Bool("direct", cls.Direct),
		zap.Stringer("action", action),
		zap.Stringer("stage", next.Stage),
	)

	return h.createResponse(request, reply, cls.Intent, next.Stage)
}

func (h *ChatHandler) answerAction(action dialogue.Action, state dialogue.State, log *zap.Logger) string {
	switch action {
	case dialogue.ActionAskLate:
		return prompts.AskLateText
	case dialogue.ActionAskParking:
		return prompts.AskParkingText
	case dialogue.ActionAskContact:
		return prompts.AskContactText
	case dialogue.ActionCancelled:
		return prompts.CancelledText
	case dialogue.ActionOverflow:
		return prompts.OverflowText
	case dialogue.ActionQuery:
		late, parking, contact := state.Preferences()
		records, err := h.venues.Filter(late, parking, contact)
		if err != nil {
			return h.queryFailed(err, log)
		}
		metrics.RecommendationResults.Observe(float64(len(records)))
		return prompts.Recommendation(records)
	}
	return prompts.NoMatchText
}

func (h *ChatHandler) answerIntent(cls intent.Classification, input string, log *zap.Logger) string {
	if !cls.Confident {
		return prompts.NoMatchText
	}

	switch cls.Intent {
	case corpus.Greeting:
		return prompts.Greeting(cls.Match.Phrase)
	case corpus.HangoutInfo:
		return prompts.HangoutInfo(cls.Match.Phrase)
	case corpus.Thanks:
		return prompts.ThanksText
	case corpus.Location:
		return prompts.LocationText

	case corpus.Ranking:
		records, err := h.venues.TopN(h.topN)
		if err != nil {
			return h.queryFailed(err, log)
		}
		return prompts.Ranking(records)

	case corpus.ListStores:
		records, err := h.venues.ListAll()
		if err != nil {
			return h.queryFailed(err, log)
		}
		return prompts.Listing(records)

	case corpus.Detail:
		records, err := h.venues.DetailAll()
		if err != nil {
			return h.queryFailed(err, log)
		}
		return prompts.Detail(records)
	}

	return prompts.Unknown(input)
}

func (h *ChatHandler) queryFailed(err error, log *zap.Logger) string {
	if !errors.Is(err, venue.ErrNoData) {
		log.Error("venue query failed", zap.Error(err))
	} else {
		log.Warn("venue dataset is empty")
	}
	return prompts.NoDataText
}

// loadSession returns a fresh idle session when the store fails.
func (h *ChatHandler) loadSession(ctx context.Context, request *models.ChatRequest, log *zap.Logger) *memory.SessionData {
	session, err := h.sessions.Session(ctx, request.SessionID, request.UserID)
	if err == nil {
		return session
	}

	metrics.SessionStoreErrors.WithLabelValues("load").Inc()
	log.Error("failed to load dialogue state", zap.Error(err))
	now := time.Now()
	return &memory.SessionData{
		SessionID: request.SessionID,
		UserID:    request.UserID,
		Metadata:  memory.Metadata{StartedAt: now, LastActivity: now},
	}
}

func (h *ChatHandler) validateRequest(request *models.ChatRequest) error {
	if request.SessionID == "" {
		return errors.New("session_id is required")
	}
	return nil
}

func (h *ChatHandler) createResponse(request *models.ChatRequest, reply string, tag corpus.Tag, stage dialogue.Stage) *models.ChatResponse {
	return &models.ChatResponse{
		SessionID: request.SessionID,
		Reply:     reply,
		Intent:    tag.String(),
		Stage:     stage.String(),
		Status:    models.StatusOK,
	}
}

func (h *ChatHandler) createErrorResponse(request *models.ChatRequest, errorCode, errorMessage string) *models.ChatResponse {
	return &models.ChatResponse{
		SessionID:    request.SessionID,
		Reply:        prompts.ErrorText,
		Intent:       corpus.Unknown.String(),
		Stage:        dialogue.Idle.String(),
		Status:       models.StatusError,
		ErrorCode:    &errorCode,
		ErrorMessage: &errorMessage,
	}
}
