// Package a2a serves the digital twin as an agent over JSON-RPC 2.0.
package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
	"github.com/BerylCAtieno/digital-twin-agent/internal/twin"
)

const emptyMessageReply = "Please describe the person to model, for example their age, income, state, education and marital status."

// Twin is the report pipeline the agent drives.
type Twin interface {
	FromText(ctx context.Context, text string) twin.Extraction
	Build(ctx context.Context, profile models.DemographicProfile, description string) (*twin.Report, error)
}

type Handler struct {
	twin   Twin
	card   AgentCard
	logger *zap.Logger
}

func NewHandler(t Twin, card AgentCard, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{twin: t, card: card, logger: logger}
}

func (h *Handler) Register(router gin.IRouter) {
	router.GET(AgentCardPath, h.ServeAgentCard)
	router.POST(EndpointPath, h.HandleMessage)
}

func (h *Handler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleMessage processes A2A messages
func (h *Handler) HandleMessage(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("failed to read request body", zap.Error(err))
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.logger.Debug("a2a request", zap.ByteString("body", body))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil || rpcReq.Method == "" {
		h.logger.Debug("not a JSON-RPC request, trying direct message", zap.Error(err))
		h.handleDirectMessage(c, body)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("invalid JSON-RPC version", zap.String("version", rpcReq.JSONRPC))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("unknown method", zap.String("method", rpcReq.Method))
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage accepts message params without the JSON-RPC envelope.
func (h *Handler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	const id = "direct-message"
	h.sendSuccessResponse(c, id, h.run(c.Request.Context(), id, params.Message))
}

func (h *Handler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	raw, err := json.Marshal(rpcReq.Params)
	if err != nil {
		h.sendErrorResponse(c, rpcReq.ID, "Failed to parse parameters", CodeInvalidParams)
		return
	}

	var params MessageParams
	if err := json.Unmarshal(raw, &params); err != nil {
		h.logger.Warn("invalid params", zap.Error(err))
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	taskID := fmt.Sprint(rpcReq.ID)
	if params.Message.TaskID != nil && *params.Message.TaskID != "" {
		taskID = *params.Message.TaskID
	}

	h.sendSuccessResponse(c, rpcReq.ID, h.run(c.Request.Context(), taskID, params.Message))
}

// run builds the report for the text in msg.
func (h *Handler) run(ctx context.Context, taskID string, msg A2AMessage) TaskResult {
	text := extractText(msg)
	if text == "" {
		return h.inputRequiredResult(taskID, emptyMessageReply)
	}

	extraction := h.twin.FromText(ctx, text)
	h.logger.Info("profile extracted",
		zap.String("task_id", taskID),
		zap.String("method", extraction.Method),
		zap.Float64("confidence", extraction.Confidence))

	report, err := h.twin.Build(ctx, extraction.Profile, text)
	if err != nil {
		h.logger.Warn("report failed", zap.String("task_id", taskID), zap.Error(err))
		return h.errorTaskResult(taskID, fmt.Sprintf("Could not build a digital twin from that description: %v", err))
	}

	return h.successTaskResult(taskID, contextID(msg), report, extraction)
}

// extractText collects the user's text from msg. Data parts holding a
// conversation history contribute their most recent text entry.
func extractText(msg A2AMessage) string {
	var texts []string

	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if s, ok := part.Text.(string); ok && strings.TrimSpace(s) != "" {
				texts = append(texts, strings.TrimSpace(s))
			}
		case "data":
			if s := latestHistoryText(part.Data); s != "" {
				texts = append(texts, s)
			}
		}
	}

	return strings.TrimSpace(strings.Join(texts, " "))
}

func latestHistoryText(data any) string {
	if data == nil {
		return ""
	}

	var raw []byte
	switch v := data.(type) {
	case string:
		raw = []byte(v)
	case json.RawMessage:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		raw = b
	}

	var history []map[string]any
	if err := json.Unmarshal(raw, &history); err != nil {
		return ""
	}

	for i := len(history) - 1; i >= 0; i-- {
		if kind, _ := history[i]["kind"].(string); kind != "text" {
			continue
		}
		text, _ := history[i]["text"].(string)
		text = strings.TrimSpace(strings.NewReplacer("<p>", "", "</p>", "").Replace(text))
		if isPlaceholder(text) {
			continue
		}
		return text
	}
	return ""
}

// isPlaceholder matches progress filler that chat clients echo back.
func isPlaceholder(text string) bool {
	if strings.Trim(text, ".") == "" {
		return true
	}
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "generating") || strings.HasPrefix(lower, "building")
}

func contextID(msg A2AMessage) string {
	if msg.ContextID != nil && *msg.ContextID != "" {
		return *msg.ContextID
	}
	return uuid.New().String()
}

func (h *Handler) successTaskResult(taskID, ctxID string, report *twin.Report, extraction twin.Extraction) TaskResult {
	text := report.Markdown()
	text += fmt.Sprintf("\n_Profile read by %s extraction (pattern confidence %.0f%%)._\n", extraction.Method, extraction.Confidence*100)

	return TaskResult{
		ID:        taskID,
		ContextID: ctxID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    &taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       "Digital Twin Report",
				Parts:      []MessagePart{TextPart(text)},
			},
			{
				ArtifactID: uuid.New().String(),
				Name:       "Digital Twin Data",
				Parts:      []MessagePart{DataPart(report)},
			},
		},
	}
}

func (h *Handler) inputRequiredResult(taskID, prompt string) TaskResult {
	result := h.errorTaskResult(taskID, prompt)
	result.Status.State = StateInputRequired
	return result
}

func (h *Handler) errorTaskResult(taskID, message string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				Parts:     []MessagePart{TextPart(message)},
			},
		},
	}
}

func (h *Handler) sendSuccessResponse(c *gin.Context, id any, result TaskResult) {
	h.logger.Debug("a2a response", zap.String("task_id", result.ID), zap.String("state", result.Status.State))
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// JSON-RPC errors are sent with 200 OK.
func (h *Handler) sendErrorResponse(c *gin.Context, id any, message string, code int) {
	h.logger.Warn("a2a error response", zap.Int("code", code), zap.String("message", message))
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
