package engine

import "time"

// SettlePolicy is the pause inserted after interactive actions so that
// asynchronous UI effects (animations, reflows) stabilize before the next
// scenario runs. The default is a fixed duration; a stricter implementation
// can substitute condition-based waiting without changing handler contracts.
type SettlePolicy interface {
	AfterInteract()
	AfterNavigate()
}

// FixedSettle sleeps for a fixed duration after each action class.
type FixedSettle struct {
	Interact time.Duration
	Navigate time.Duration
}

func (f FixedSettle) AfterInteract() {
	if f.Interact > 0 {
		time.Sleep(f.Interact)
	}
}

func (f FixedSettle) AfterNavigate() {
	if f.Navigate > 0 {
		time.Sleep(f.Navigate)
	}
}

// DefaultSettle is the settle policy used when options leave it nil.
var DefaultSettle SettlePolicy = FixedSettle{
	Interact: 400 * time.Millisecond,
	Navigate: time.Second,
}

// NoSettle disables settling entirely. Used by tests.
var NoSettle SettlePolicy = FixedSettle{}
