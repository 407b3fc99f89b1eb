package feed

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"haul-and-hoard/server/internal/world"
)

func dialTestFeed(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(NewHandler(hub, HandlerConfig{}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn, out any) {
	t.Helper()
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
}

func TestSubscriberReceivesHello(t *testing.T) {
	hub := NewHub(HubConfig{TickRate: 10}, nil, nil)
	defer hub.Close()
	conn := dialTestFeed(t, hub)

	var hello HelloMessage
	readMessage(t, conn, &hello)
	if hello.Type != MessageTypeHello {
		t.Fatalf("type = %q, want %q", hello.Type, MessageTypeHello)
	}
	if hello.ProtocolVersion != ProtocolVersion {
		t.Fatalf("protocol version = %d, want %d", hello.ProtocolVersion, ProtocolVersion)
	}
	if hello.TickRate != 10 {
		t.Fatalf("tick rate = %d, want 10", hello.TickRate)
	}
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub(HubConfig{TickRate: 10}, nil, nil)
	defer hub.Close()
	conn := dialTestFeed(t, hub)

	var hello HelloMessage
	readMessage(t, conn, &hello)

	hub.Broadcast(SignalFrame{
		Type: MessageTypeSignals,
		Tick: 7,
		Structures: []world.StructureSnapshot{{
			ID:   "structure-1",
			Type: "granary_chute",
			Signals: []world.SignalSnapshot{
				{Kind: "pull", ItemID: "berry", Strength: 10},
			},
		}},
	})

	var frame SignalFrame
	readMessage(t, conn, &frame)
	if frame.Type != MessageTypeSignals || frame.Tick != 7 {
		t.Fatalf("frame = %+v", frame)
	}
	if len(frame.Structures) != 1 || frame.Structures[0].Signals[0].ItemID != "berry" {
		t.Fatalf("structures = %+v", frame.Structures)
	}
}

func TestLateJoinerReceivesLastFrame(t *testing.T) {
	hub := NewHub(HubConfig{TickRate: 10}, nil, nil)
	defer hub.Close()

	hub.Broadcast(SignalFrame{Type: MessageTypeSignals, Tick: 3})

	conn := dialTestFeed(t, hub)
	var hello HelloMessage
	readMessage(t, conn, &hello)

	var frame SignalFrame
	readMessage(t, conn, &frame)
	if frame.Tick != 3 {
		t.Fatalf("replayed frame tick = %d, want 3", frame.Tick)
	}
}

func TestSubscriberCountTracksLifecycle(t *testing.T) {
	hub := NewHub(HubConfig{TickRate: 10}, nil, nil)
	defer hub.Close()

	conn := dialTestFeed(t, hub)
	var hello HelloMessage
	readMessage(t, conn, &hello)

	if got := hub.SubscriberCount(); got != 1 {
		t.Fatalf("SubscriberCount() = %d, want 1", got)
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.SubscriberCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscriber never released, count = %d", hub.SubscriberCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFrameFromSnapshot(t *testing.T) {
	snapshot := world.Snapshot{
		Tick: 12,
		Structures: []world.StructureSnapshot{
			{ID: "structure-1", Type: "collection_bin"},
		},
		Litter: []world.LitterSnapshot{
			{Pos: world.TilePos{X: 1, Y: 2}},
		},
	}

	frame := FrameFromSnapshot(snapshot)
	if frame.Type != MessageTypeSignals {
		t.Fatalf("type = %q, want %q", frame.Type, MessageTypeSignals)
	}
	if frame.Tick != 12 || len(frame.Structures) != 1 || len(frame.Litter) != 1 {
		t.Fatalf("frame = %+v", frame)
	}
}
