package signals

// Emitter holds the signals a structure currently advertises. Contents are
// derived state: the emission pass replaces them wholesale every tick, so no
// signal ever survives from a prior tick.
type Emitter struct {
	signals []Signal
}

// Replace discards the current advertisement and installs the new one.
func (e *Emitter) Replace(signals []Signal) {
	if e == nil {
		return
	}
	e.signals = e.signals[:0]
	e.signals = append(e.signals, signals...)
}

// Signals returns a copy of the current advertisement.
func (e *Emitter) Signals() []Signal {
	if e == nil || len(e.signals) == 0 {
		return nil
	}
	return append([]Signal(nil), e.signals...)
}

// Len reports how many signals are currently advertised.
func (e *Emitter) Len() int {
	if e == nil {
		return 0
	}
	return len(e.signals)
}
