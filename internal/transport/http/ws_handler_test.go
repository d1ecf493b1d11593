package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"quantum-shift/internal/app"
	"quantum-shift/internal/clock"
	"quantum-shift/internal/domain"
	"quantum-shift/internal/infra/memory"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T, sched clock.Scheduler) (*httptest.Server, *memory.RoundRegistry) {
	t.Helper()
	registry := memory.NewRoundRegistry()
	banks := memory.NewBankRepository(memory.NewStaticBankLoader(sampleBank()), time.Minute)
	service := app.NewRoundService(registry, banks, app.WithScheduler(sched))
	server := httptest.NewServer(NewRouter(service, "tiny"))
	t.Cleanup(server.Close)
	return server, registry
}

func TestWebSocketRoundFlow(t *testing.T) {
	server, _ := newTestServer(t, clock.NewFakeScheduler())

	conn := dial(t, server, "/ws?round=r1")
	defer conn.Close()

	var joined joinedPayload
	decode(t, readNext(t, conn, "joined"), &joined)
	if joined.RoundID != "r1" || joined.BankID != "tiny" || joined.Total != 2 || joined.TimePerQuestion != 20 {
		t.Fatalf("unexpected joined payload %+v", joined)
	}
	idle := readSnapshot(t, conn)
	if idle.State != domain.StateIdle {
		t.Fatalf("expected idle snapshot first, got %+v", idle)
	}

	send(t, conn, map[string]any{"type": "start"})
	if snap := readSnapshot(t, conn); snap.Event != domain.EventQuestion || snap.Index != 0 {
		t.Fatalf("expected first question, got %+v", snap)
	}

	send(t, conn, map[string]any{"type": "answer", "payload": map[string]any{"option": 1}})
	if snap := readSnapshot(t, conn); snap.State != domain.StateAnswerLocked || snap.Score != 1 {
		t.Fatalf("expected locked correct answer, got %+v", snap)
	}

	send(t, conn, map[string]any{"type": "advance"})
	if snap := readSnapshot(t, conn); snap.Index != 1 {
		t.Fatalf("expected second question, got %+v", snap)
	}

	send(t, conn, map[string]any{"type": "answer", "payload": map[string]any{"option": 1}})
	if snap := readSnapshot(t, conn); snap.Event != domain.EventResolved {
		t.Fatalf("expected resolution, got %+v", snap)
	}
	done := readSnapshot(t, conn)
	if done.State != domain.StateRoundComplete || done.Summary == nil || done.Summary.Percent != 50 {
		t.Fatalf("expected 50%% summary, got %+v", done)
	}
}

func TestWebSocketRejectsBadMessages(t *testing.T) {
	server, _ := newTestServer(t, clock.NewFakeScheduler())
	conn := dial(t, server, "/ws")
	defer conn.Close()

	readNext(t, conn, "joined")
	readSnapshot(t, conn)

	send(t, conn, map[string]any{"type": "answer", "payload": map[string]any{}})
	readNext(t, conn, "error")

	send(t, conn, map[string]any{"type": "dance"})
	readNext(t, conn, "error")
}

func TestWebSocketUnknownBank(t *testing.T) {
	server, registry := newTestServer(t, clock.NewFakeScheduler())
	conn := dial(t, server, "/ws?bank=missing")
	defer conn.Close()

	var payload errorPayload
	decode(t, readNext(t, conn, "error"), &payload)
	if !strings.Contains(payload.Message, "not found") {
		t.Fatalf("expected not found error, got %q", payload.Message)
	}
	if registry.Len() != 0 {
		t.Fatalf("no round should be created for an unknown bank")
	}
}

func TestWebSocketSharedRound(t *testing.T) {
	server, registry := newTestServer(t, clock.NewFakeScheduler())
	a := dial(t, server, "/ws?round=shared")
	defer a.Close()
	readNext(t, a, "joined")
	readSnapshot(t, a)

	b := dial(t, server, "/ws?round=shared")
	readNext(t, b, "joined")
	readSnapshot(t, b)

	send(t, a, map[string]any{"type": "start"})
	if snap := readSnapshot(t, b); snap.Event != domain.EventQuestion {
		t.Fatalf("second client should see the shared round start, got %+v", snap)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected one shared round, got %d", registry.Len())
	}

	b.Close()
	a.Close()
	deadline := time.Now().Add(5 * time.Second)
	for registry.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("round not released after both clients left")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBankEndpointHidesAnswers(t *testing.T) {
	server, _ := newTestServer(t, clock.NewFakeScheduler())

	resp, err := http.Get(server.URL + "/banks/tiny")
	if err != nil {
		t.Fatalf("get bank: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	questions := raw["questions"].([]any)
	first := questions[0].(map[string]any)
	if _, leaked := first["correctIndex"]; leaked {
		t.Fatalf("bank endpoint leaked correct index: %v", first)
	}

	missing, err := http.Get(server.URL + "/banks/nope")
	if err != nil {
		t.Fatalf("get missing bank: %v", err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func dial(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	u := "ws" + server.URL[len("http"):] + path
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn, expect string) json.RawMessage {
	t.Helper()
	var msg wsMessage
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	return msg.Payload
}

func readSnapshot(t *testing.T, conn *websocket.Conn) domain.Snapshot {
	t.Helper()
	var snap domain.Snapshot
	decode(t, readNext(t, conn, "snapshot"), &snap)
	return snap
}

func decode(t *testing.T, raw json.RawMessage, v any) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
}

func sampleBank() domain.Bank {
	return domain.Bank{
		ID: "tiny",
		Questions: []domain.Question{
			{
				Text:         "What is 2 + 2?",
				Options:      []string{"3", "4", "5"},
				CorrectIndex: 1,
				Explanation:  "Two pairs make four.",
			},
			{
				Text:         "What is 3 + 3?",
				Options:      []string{"6", "7"},
				CorrectIndex: 0,
				Explanation:  "Three doubled is six.",
			},
		},
	}
}
