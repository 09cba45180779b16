package entity

import "time"

// ScriptRequestID correlates a script evaluation with its engine completion.
type ScriptRequestID uint64

// ScriptCompletion receives the outcome of an asynchronous evaluation.
// Exactly one of result or err is meaningful: err is nil on success.
type ScriptCompletion func(result string, err error)

// PendingScript is an in-flight script evaluation.
type PendingScript struct {
	ID       ScriptRequestID
	Script   string
	Handler  ScriptCompletion
	Blocking bool
	IssuedAt time.Time

	Result string
	Err    error
	Done   bool

	// cancelTimer stops the expiry timer of an asynchronous request.
	cancelTimer func() bool
}

// NewPendingScript creates an unresolved evaluation.
func NewPendingScript(id ScriptRequestID, script string, handler ScriptCompletion, blocking bool) *PendingScript {
	return &PendingScript{
		ID:       id,
		Script:   script,
		Handler:  handler,
		Blocking: blocking,
		IssuedAt: time.Now(),
	}
}

// SetTimer records the stop function of the expiry timer.
func (p *PendingScript) SetTimer(stop func() bool) {
	p.cancelTimer = stop
}

// Resolve fills the result slot once. It returns false if already resolved.
func (p *PendingScript) Resolve(result string, err error) bool {
	if p.Done {
		return false
	}
	if p.cancelTimer != nil {
		p.cancelTimer()
		p.cancelTimer = nil
	}
	if err != nil {
		result = ""
	}
	p.Result = result
	p.Err = err
	p.Done = true
	return true
}
