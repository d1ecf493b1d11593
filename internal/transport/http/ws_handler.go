package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"quantum-shift/internal/app"
	"quantum-shift/internal/domain"
)

type WSHandler struct {
	service     *app.RoundService
	defaultBank string
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.RoundService, defaultBank string) *WSHandler {
	if defaultBank == "" {
		defaultBank = domain.DefaultBankID
	}
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
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
	Option *int `json:"option"`
}

type joinedPayload struct {
	RoundID         string `json:"roundId"`
	BankID          string `json:"bankId"`
	Total           int    `json:"total"`
	TimePerQuestion int    `json:"timePerQuestion"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives one round per round id.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}
	roundID := r.URL.Query().Get("round")
	if roundID == "" {
		roundID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	round, err := h.service.Join(r.Context(), roundID, bankID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.Leave(r.Context(), round)

	updates, cancel := round.Subscribe()
	defer cancel()

	ctrl := round.Controller()
	send := make(chan outboundMessage[any], 32)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine; gorilla connections allow one concurrent writer.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "joined", Payload: joinedPayload{
		RoundID:         round.ID,
		BankID:          round.BankID,
		Total:           ctrl.Bank().Len(),
		TimePerQuestion: ctrl.TimePerQuestion(),
	}}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "snapshot", Payload: snap}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			ctrl.StartRound()
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Option == nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			ctrl.SelectAnswer(*payload.Option)
		case "advance":
			ctrl.Advance()
		case "reset":
			ctrl.ResetRound()
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
