package gateway

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/promptforge/prompt-studio/enhancer-api/internal/chain"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/enhancement"
	"github.com/promptforge/prompt-studio/enhancer-api/internal/models"
)

var wsTracer = otel.Tracer("enhancement-stream")

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: Implement proper origin checking for production
		return true
	},
}

// Streamer serves the enhancement WebSocket. Clients send enhancement
// requests as JSON messages and receive one event per chain step, then a
// final event carrying the full response.
type Streamer struct {
	enhancementService *enhancement.Service
	tracer             trace.Tracer
}

// NewStreamer creates a new enhancement streamer
func NewStreamer(enhancementService *enhancement.Service) *Streamer {
	return &Streamer{
		enhancementService: enhancementService,
		tracer:             wsTracer,
	}
}

// StreamEnhancements handles WebSocket /api/ws/enhancements
// @Summary Stream enhancement progress
// @Description WebSocket endpoint: send an enhancement request, receive per-step progress events and the final result
// @Tags enhancements
// @Param token query string false "JWT when the Authorization header cannot be set"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /ws/enhancements [get]
func (s *Streamer) StreamEnhancements(c *gin.Context) {
	ctx, span := s.tracer.Start(c.Request.Context(), "stream.enhancements")
	defer span.End()

	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.String("user.id", userID.String()))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		span.RecordError(err)
		log.Printf(`{"level":"error","message":"Failed to upgrade connection","error":"%v"}`, err)
		return
	}
	defer conn.Close()

	log.Printf(`{"level":"info","message":"Enhancement stream opened","user_id":"%s"}`, userID)

	for {
		var req models.EnhanceRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf(`{"level":"warn","message":"Enhancement stream read error","error":"%v"}`, err)
			}
			break
		}

		s.runStreamed(ctx, conn, userID, req)
	}

	log.Printf(`{"level":"info","message":"Enhancement stream closed","user_id":"%s"}`, userID)
}

// runStreamed executes one chain and pushes its step events over the
// connection. The observer runs on the executor's goroutine, so writes here
// never interleave with each other.
func (s *Streamer) runStreamed(ctx context.Context, conn *websocket.Conn, userID uuid.UUID, req models.EnhanceRequest) {
	chainID := uuid.New().String()

	writeEvent(conn, models.StreamEvent{
		Type:      models.StreamEventChainStarted,
		ChainID:   chainID,
		Timestamp: time.Now().UTC(),
	})

	observer := func(event chain.StepEvent) {
		writeEvent(conn, models.StreamEvent{
			Type:      stepEventType(event.Status),
			ChainID:   chainID,
			Technique: event.Technique,
			Index:     event.Index,
			Status:    event.Status,
			Error:     event.Error,
			Timestamp: time.Now().UTC(),
		})
	}

	output, err := s.enhancementService.Enhance(ctx, userID, enhancement.Input{
		Text:       req.Text,
		Techniques: req.Techniques,
		Intent:     req.Intent,
		Complexity: req.Complexity,
		Options:    req.Options,
	}, observer)
	if err != nil {
		writeEvent(conn, models.StreamEvent{
			Type:      models.StreamEventError,
			ChainID:   chainID,
			Error:     err.Error(),
			Timestamp: time.Now().UTC(),
		})
		return
	}

	writeEvent(conn, models.StreamEvent{
		Type:    models.StreamEventChainFinished,
		ChainID: chainID,
		Payload: map[string]interface{}{
			"enhanced_prompt": output.Response.EnhancedPrompt,
			"intent":          output.Intent,
			"complexity":      output.Complexity,
			"metadata":        output.Response.Metadata,
			"warnings":        output.Response.Warnings,
		},
		Timestamp: time.Now().UTC(),
	})
}

func stepEventType(status string) string {
	switch status {
	case chain.StepFailed:
		return models.StreamEventStepFailed
	case chain.StepSkipped:
		return models.StreamEventStepSkipped
	default:
		return models.StreamEventStepCompleted
	}
}

func writeEvent(conn *websocket.Conn, event models.StreamEvent) {
	if err := conn.WriteJSON(event); err != nil {
		log.Printf(`{"level":"warn","message":"Enhancement stream write error","error":"%v"}`, err)
	}
}
