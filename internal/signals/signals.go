// Package signals defines the advertisement vocabulary structures use to
// publish their supply and demand state to the rest of the colony.
package signals

import (
	"fmt"

	"haul-and-hoard/server/internal/items"
)

// SignalKind enumerates the advertised intents.
type SignalKind string

const (
	// KindPull advertises unmet demand: "I want more of this."
	KindPull SignalKind = "pull"
	// KindPush advertises available supply: "I have this on offer."
	KindPush SignalKind = "push"
	// KindContains is part of the broader signal vocabulary used by storage
	// queries. The logistics core never produces it.
	KindContains SignalKind = "contains"
)

// SignalType pairs an intent with the item classification it applies to.
type SignalType struct {
	Kind SignalKind
	Item items.ItemKind
}

// Pull builds a demand signal for the given item kind.
func Pull(item items.ItemKind) SignalType {
	return SignalType{Kind: KindPull, Item: item}
}

// Push builds a supply signal for the given item kind.
func Push(item items.ItemKind) SignalType {
	return SignalType{Kind: KindPush, Item: item}
}

// Contains builds a storage advertisement for the given item kind.
func Contains(item items.ItemKind) SignalType {
	return SignalType{Kind: KindContains, Item: item}
}

func (t SignalType) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Item)
}

// SignalStrength is the scalar magnitude attached to a signal.
type SignalStrength float64

// Signal is one advertised (type, strength) pair.
type Signal struct {
	Type     SignalType
	Strength SignalStrength
}

// Equal reports whether two signal lists advertise the same state in the
// same order.
func Equal(a, b []Signal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
