package webkit

import "github.com/bnema/embedview/internal/application/port"

// generationLatch tags WebKit load signals with the generation of the request
// that produced them. A superseded load may still report its failure and
// finish after the next request was issued, so signals carry the generation
// latched when the load started rather than the latest one issued.
type generationLatch struct {
	issued  port.Generation
	active  port.Generation
	running bool
}

// issue records a host request. Zero means page-initiated.
func (l *generationLatch) issue(gen port.Generation) {
	l.issued = gen
}

// started latches the issued generation onto the load that just began.
func (l *generationLatch) started() port.Generation {
	l.active = l.issued
	l.running = true
	return l.active
}

// failed returns the generation of the failing load. A request that fails
// before it ever started belongs to the latest issue.
func (l *generationLatch) failed() port.Generation {
	if !l.running {
		return l.issued
	}
	return l.active
}

// finished returns the generation of the finished load and, once the latest
// request has finished, reverts to page-initiated.
func (l *generationLatch) finished() port.Generation {
	gen := l.active
	if !l.running {
		gen = l.issued
	}
	l.running = false
	if gen == l.issued {
		l.issued = port.PageInitiated
	}
	return gen
}
