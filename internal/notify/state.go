package notify

import "time"

type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Backoff is the reconnect policy. Attempt n waits Floor·2^(n-1), capped
// at Cap; attempts beyond MaxAttempts are not made.
type Backoff struct {
	Floor       time.Duration `yaml:"floor"`
	Cap         time.Duration `yaml:"cap"`
	MaxAttempts int           `yaml:"max_attempts"`
}

func DefaultBackoff() Backoff {
	return Backoff{
		Floor:       time.Second,
		Cap:         30 * time.Second,
		MaxAttempts: 5,
	}
}

func (b Backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	d := b.Floor
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= b.Cap {
			return b.Cap
		}
	}
	if d > b.Cap {
		return b.Cap
	}
	return d
}
