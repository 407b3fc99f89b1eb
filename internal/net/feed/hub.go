package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"haul-and-hoard/server/internal/telemetry"
)

const writeWait = 10 * time.Second

// HubConfig carries the values announced to new subscribers.
type HubConfig struct {
	TickRate int
}

// Hub tracks feed subscribers and fans frames out to them. Broadcast never
// blocks the simulation: a subscriber that cannot keep up has frames
// dropped, and signal frames are full state so a dropped frame is repaired
// by the next one.
type Hub struct {
	config  HubConfig
	logger  telemetry.Logger
	metrics telemetry.Metrics

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	lastFrame   []byte
}

// NewHub builds an empty hub. Logger and metrics may be nil.
func NewHub(cfg HubConfig, logger telemetry.Logger, metrics telemetry.Metrics) *Hub {
	if logger == nil {
		logger = telemetry.LoggerFunc(func(string, ...any) {})
	}
	return &Hub{
		config:      cfg,
		logger:      logger,
		metrics:     metrics,
		subscribers: make(map[*subscriber]struct{}),
	}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

func (s *subscriber) queue(data []byte) bool {
	select {
	case s.send <- data:
		return true
	default:
		return false
	}
}

// Broadcast marshals the frame once and queues it to every subscriber. The
// frame is retained so late joiners receive current state immediately.
func (h *Hub) Broadcast(frame SignalFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		h.logger.Printf("failed to marshal signal frame: %v", err)
		return
	}

	h.mu.Lock()
	h.lastFrame = data
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		if !sub.queue(data) && h.metrics != nil {
			h.metrics.Add("feed.frames_dropped", 1)
		}
	}
	if h.metrics != nil {
		h.metrics.Add("feed.frames_broadcast", 1)
	}
}

// Subscribe registers a connection, greets it, and replays the most recent
// frame. The returned subscriber must be released with Unsubscribe.
func (h *Hub) Subscribe(conn *websocket.Conn) (*subscriber, error) {
	sub := &subscriber{
		conn: conn,
		send: make(chan []byte, 16),
		done: make(chan struct{}),
	}

	hello, err := json.Marshal(HelloMessage{
		Type:            MessageTypeHello,
		ProtocolVersion: ProtocolVersion,
		TickRate:        h.config.TickRate,
	})
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	last := h.lastFrame
	h.mu.Unlock()

	go sub.writePump(h)

	sub.queue(hello)
	if last != nil {
		sub.queue(last)
	}
	return sub, nil
}

// Unsubscribe releases a subscriber and closes its connection.
func (h *Hub) Unsubscribe(sub *subscriber) {
	if sub == nil {
		return
	}
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
	sub.close()
}

// SubscriberCount reports how many consumers are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.subscribers = make(map[*subscriber]struct{})
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
}

func (s *subscriber) writePump(h *Hub) {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.Unsubscribe(s)
				return
			}
		}
	}
}
