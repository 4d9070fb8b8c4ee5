package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/franckalain/nutriscan/internal/estimate"
	"github.com/franckalain/nutriscan/internal/logger"
	"github.com/franckalain/nutriscan/internal/nutrition"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// wsMessage is the envelope of every websocket message in both directions.
type wsMessage struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"` // echoed back so clients can match replies
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Incoming message types and the strategy each one runs.
var wsEstimateKinds = map[string]estimate.Kind{
	"estimate_photo": estimate.KindDish,
	"estimate_text":  estimate.KindText,
	"extract_label":  estimate.KindLabel,
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Store client connection
	clientID := uuid.New().String()
	s.clients.Store(clientID, conn)
	defer s.clients.Delete(clientID)
	logger.Log.Infof("WebSocket client %s connected", clientID)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Log.Errorf("Error reading message from %s: %v", clientID, err)
			}
			break
		}

		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Log.Errorf("Error parsing message: %v", err)
			s.sendError(conn, "", "Invalid message format")
			continue
		}

		s.handleWebSocketMessage(r.Context(), conn, clientID, msg)
	}
}

func (s *Server) handleWebSocketMessage(ctx context.Context, conn *websocket.Conn, clientID string, msg wsMessage) {
	logger.Log.Debugf("Client %s sent %s (id %q)", clientID, msg.Type, msg.ID)

	if kind, ok := wsEstimateKinds[msg.Type]; ok {
		s.handleWebSocketEstimate(ctx, conn, kind, msg)
		return
	}

	switch msg.Type {
	case "rescale":
		s.handleWebSocketRescale(conn, msg)
	default:
		s.sendError(conn, msg.ID, "Unknown message type")
	}
}

func (s *Server) handleWebSocketEstimate(ctx context.Context, conn *websocket.Conn, kind estimate.Kind, msg wsMessage) {
	var req estimateRequest
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			s.sendError(conn, msg.ID, "Invalid message data")
			return
		}
	}

	input := req.PhotoDataURI
	if kind == estimate.KindText {
		input = req.DishName
	}

	ctx, cancel := s.requestContext(ctx)
	defer cancel()

	rec, err := s.service.Estimate(ctx, kind, input)
	if err != nil {
		if ctx.Err() != nil {
			err = errors.Join(err, ctx.Err())
		}
		logger.Log.Errorf("Error processing %s: %v", msg.Type, err)
		s.sendError(conn, msg.ID, publicMessage(err))
		return
	}

	logger.Log.Infof("Successfully processed %s: %s, energy %.1f kcal", msg.Type, rec.Name, rec.Energy)
	s.sendMessage(conn, "result", msg.ID, rec)
}

func (s *Server) handleWebSocketRescale(conn *websocket.Conn, msg wsMessage) {
	var req rescaleRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.sendError(conn, msg.ID, "Invalid message data")
		return
	}

	consumed, err := nutrition.Rescale(req.Record, req.Grams)
	if err != nil {
		s.sendError(conn, msg.ID, err.Error())
		return
	}
	s.sendMessage(conn, "rescaled", msg.ID, consumed)
}

func (s *Server) sendMessage(conn *websocket.Conn, messageType, id string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		logger.Log.Errorf("Error encoding %s message: %v", messageType, err)
		s.sendError(conn, id, "Internal error")
		return
	}

	logger.Log.Debugf("Sending message to client - Type: %s, Data: %s", messageType, payload)
	if err := conn.WriteJSON(wsMessage{Type: messageType, ID: id, Data: payload}); err != nil {
		logger.Log.Errorf("Error sending message: %v", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, id, message string) {
	if err := conn.WriteJSON(wsMessage{Type: "error", ID: id, Message: message}); err != nil {
		logger.Log.Errorf("Error sending error message: %v", err)
	}
}
