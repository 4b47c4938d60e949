package cli

// gateState is the routing decision derived from the session store:
// while the persisted credential is still being validated nothing is
// decided; afterwards the session is either authenticated or not.
type gateState int

const (
	gateLoading gateState = iota
	gateUnauthenticated
	gateAuthenticated
)

// sessionState is the slice of the session store the gate reads.
type sessionState interface {
	Loading() bool
	IsAuthenticated() bool
}

// gateFor re-derives the routing state from the current session. It is
// evaluated on every REPL iteration, so a session dropped mid-loop
// (expiry, logout) lands back on the login prompt immediately.
func gateFor(s sessionState) gateState {
	if s.Loading() {
		return gateLoading
	}
	if s.IsAuthenticated() {
		return gateAuthenticated
	}
	return gateUnauthenticated
}
