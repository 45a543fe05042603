package http

import (
	"encoding/json"
	"log"
	"net/http"

	"gearmatch/internal/app"
	"gearmatch/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz session per websocket connection.
type WSHandler struct {
	service  *app.AdvisorService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.AdvisorService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Value      any    `json:"value"`
}

type skipPayload struct {
	QuestionID string `json:"questionId"`
}

type modePayload struct {
	Mode string `json:"mode"`
}

type sessionPayload struct {
	SessionID string          `json:"sessionId"`
	Category  domain.Category `json:"category"`
	Mode      domain.Mode     `json:"mode"`
}

type questionPayload struct {
	Question *domain.Question `json:"question"`
	Complete bool             `json:"complete"`
}

type movedPayload struct {
	Moved bool `json:"moved"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the connection and runs the quiz message loop. The quiz
// engine is single-goroutine, so the loop reads, applies, and replies
// sequentially; there is no broadcast fan-out here.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("category"))
	if !category.Valid() {
		http.Error(w, "missing or unknown category", http.StatusBadRequest)
		return
	}
	mode := domain.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.ModePersonalized
	}
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.StartSession(r.Context(), sessionID, category, mode)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.EndSession(sessionID)

	_ = conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{
		SessionID: sessionID,
		Category:  category,
		Mode:      mode,
	}})
	h.sendQuestion(conn, session)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestionID == "" {
				h.sendError(conn, "invalid answer payload")
				continue
			}
			session.SetAnswer(payload.QuestionID, payload.Value)
			h.sendQuestion(conn, session)
		case "skip":
			var payload skipPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.QuestionID == "" {
				h.sendError(conn, "invalid skip payload")
				continue
			}
			session.Skip(payload.QuestionID)
			h.sendQuestion(conn, session)
		case "next":
			_ = conn.WriteJSON(outboundMessage[movedPayload]{Type: "moved", Payload: movedPayload{Moved: session.Next()}})
			h.sendQuestion(conn, session)
		case "back":
			_ = conn.WriteJSON(outboundMessage[movedPayload]{Type: "moved", Payload: movedPayload{Moved: session.Back()}})
			h.sendQuestion(conn, session)
		case "mode":
			var payload modePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid mode payload")
				continue
			}
			session.SetMode(domain.Mode(payload.Mode))
			h.sendQuestion(conn, session)
		case "recommend":
			result, err := h.service.Recommend(r.Context(), sessionID)
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			_ = conn.WriteJSON(outboundMessage[domain.RecommendationResult]{Type: "result", Payload: result})
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) sendQuestion(conn *websocket.Conn, session *app.Session) {
	q, ok, complete := session.Current()
	payload := questionPayload{Complete: complete}
	if ok {
		payload.Question = &q
	}
	_ = conn.WriteJSON(outboundMessage[questionPayload]{Type: "question", Payload: payload})
}

func (h *WSHandler) sendError(conn *websocket.Conn, msg string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: msg}})
}
