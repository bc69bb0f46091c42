package interp

// SignalKind identifies a non-error control transfer.
type SignalKind int

const (
	SignalNone   SignalKind = iota
	SignalStop              // STOP: leave the current procedure
	SignalOutput            // OUTPUT: leave the current procedure with a value
)

// Signal travels up through blocks and loops until a procedure call
// consumes it. At top level it is discarded.
type Signal struct {
	Kind  SignalKind
	Value Value
}

// Active reports whether the signal interrupts the current block.
func (s Signal) Active() bool {
	return s.Kind != SignalNone
}

var noSignal = Signal{}
