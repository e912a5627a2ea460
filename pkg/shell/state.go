package shell

// State is the lifecycle stage of a session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateTerminated
)

func (st State) String() string {
	switch st {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

func (s *Shell) transition(to State) {
	s.log.WithField("from", s.state).WithField("to", to).Debug("session state changed")
	s.state = to
}

// State reports where the session is in its lifecycle.
func (s *Shell) State() State {
	return s.state
}
