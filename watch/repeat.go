package watch

// Default key-repeat timing, counted in accepted polls.
const (
	DefaultRepeatDelay    = 12
	DefaultRepeatInterval = 2
)

// RepeatPolicy controls how a held key turns into repeated commands.
type RepeatPolicy struct {
	Delay    int
	Interval int
}

// DefaultRepeatPolicy returns the shipped timing.
func DefaultRepeatPolicy() RepeatPolicy {
	return RepeatPolicy{Delay: DefaultRepeatDelay, Interval: DefaultRepeatInterval}
}

func (p RepeatPolicy) normalized() RepeatPolicy {
	if p.Delay < 1 {
		p.Delay = 1
	}
	if p.Interval < 1 {
		p.Interval = 1
	}
	return p
}

// RepeatGate throttles a polled key. Every other poll is ignored. The first
// accepted poll of a press fires, then nothing until the key has been held
// for Delay accepted polls, then one command every Interval accepted polls.
type RepeatGate struct {
	policy RepeatPolicy
	polls  uint64
	held   int
	key    Command
}

// NewRepeatGate returns a gate with the given policy.
func NewRepeatGate(p RepeatPolicy) *RepeatGate {
	return &RepeatGate{policy: p.normalized()}
}

// Poll reports whether key, observed as down or up on this poll, should be
// emitted. Switching to a different key starts a new press.
func (g *RepeatGate) Poll(key Command, down bool) bool {
	g.polls++
	if g.polls%2 == 1 {
		return false
	}
	if !down {
		g.held = 0
		return false
	}
	if key != g.key {
		g.key = key
		g.held = 0
	}
	g.held++
	if g.held == 1 {
		return true
	}
	if g.held < g.policy.Delay {
		return false
	}
	return (g.held-g.policy.Delay)%g.policy.Interval == 0
}
