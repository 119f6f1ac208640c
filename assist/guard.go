package assist

// Ticket identifies one assist request and the editor session it was made in.
type Ticket struct {
	generation uint64
}

// Guard decides whether a finished request may still touch the editor.
// Opening or closing the editor starts a new generation; replies carrying
// an older ticket are dropped. Only one request runs per session.
type Guard struct {
	generation uint64
	inFlight   bool
}

// Open starts a new editing session.
func (g *Guard) Open() {
	g.generation++
	g.inFlight = false
}

// Close ends the current session. Pending replies become stale.
func (g *Guard) Close() {
	g.generation++
	g.inFlight = false
}

// Busy reports whether a request from the current session is pending.
func (g *Guard) Busy() bool {
	return g.inFlight
}

// Begin marks a request in flight. ok is false if one already is.
func (g *Guard) Begin() (t Ticket, ok bool) {
	if g.inFlight {
		return Ticket{}, false
	}
	g.inFlight = true
	return Ticket{generation: g.generation}, true
}

// Finish reports whether t belongs to the current session, clearing the
// in-flight flag when it does.
func (g *Guard) Finish(t Ticket) bool {
	if t.generation != g.generation {
		return false
	}
	g.inFlight = false
	return true
}
