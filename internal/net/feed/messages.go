// Package feed broadcasts each tick's emitted signals to downstream
// consumers over websockets. Worker AI, pathing, and job assignment live in
// other processes and react to these frames; this server only produces them.
package feed

import "haul-and-hoard/server/internal/world"

// ProtocolVersion identifies the feed wire format.
const ProtocolVersion = 1

const (
	// MessageTypeHello greets a new subscriber.
	MessageTypeHello = "hello"
	// MessageTypeSignals carries one tick's advertisement snapshot.
	MessageTypeSignals = "signals"
)

// HelloMessage is sent once when a subscriber joins.
type HelloMessage struct {
	Type            string `json:"type" jsonschema:"enum=hello"`
	ProtocolVersion int    `json:"protocol_version"`
	TickRate        int    `json:"tick_rate_hz"`
}

// SignalFrame is sent after every tick: the full set of structures with
// their current advertisements, plus the occupied litter pools.
type SignalFrame struct {
	Type       string                    `json:"type" jsonschema:"enum=signals"`
	Tick       uint64                    `json:"tick"`
	Structures []world.StructureSnapshot `json:"structures"`
	Litter     []world.LitterSnapshot    `json:"litter"`
}

// FrameFromSnapshot wraps a world snapshot in the wire envelope.
func FrameFromSnapshot(snapshot world.Snapshot) SignalFrame {
	return SignalFrame{
		Type:       MessageTypeSignals,
		Tick:       snapshot.Tick,
		Structures: snapshot.Structures,
		Litter:     snapshot.Litter,
	}
}
