package workflows

// State is a stage of a single vault run.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateEncrypting
	StateDecrypting
	StateErasing
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:       "Idle",
	StateValidating: "Validating",
	StateEncrypting: "Encrypting",
	StateDecrypting: "Decrypting",
	StateErasing:    "Erasing",
	StateDone:       "Done",
	StateFailed:     "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// transitions lists every legal successor of each non-terminal state.
var transitions = map[State][]State{
	StateIdle:       {StateValidating, StateFailed},
	StateValidating: {StateEncrypting, StateDecrypting, StateFailed},
	StateEncrypting: {StateErasing, StateFailed},
	StateDecrypting: {StateErasing, StateFailed},
	StateErasing:    {StateDone, StateFailed},
}

// CanTransition reports whether a run may move from one state to another.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionFunc observes state changes of a run.
type TransitionFunc func(from, to State)

// machine tracks the state of one run and reports every change.
type machine struct {
	state   State
	observe TransitionFunc
}

func (m *machine) to(next State) {
	if !CanTransition(m.state, next) {
		panic("workflows: illegal transition " + m.state.String() + " -> " + next.String())
	}
	prev := m.state
	m.state = next
	if m.observe != nil {
		m.observe(prev, next)
	}
}

// fail moves to Failed and passes err through.
func (m *machine) fail(err error) error {
	m.to(StateFailed)
	return err
}
