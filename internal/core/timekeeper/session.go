package timekeeper

import (
	"time"

	"countdown/internal/core/countdown"
	"countdown/internal/remote"
)

// Phase is the lifecycle position of a countdown session.
type Phase string

const (
	// PhaseInactive means no session exists; an input error may be attached.
	PhaseInactive Phase = "inactive"
	// PhasePending means a submission is resolving.
	PhasePending Phase = "pending"
	// PhaseActive means a breakdown is displayed and may be ticking.
	PhaseActive Phase = "active"
	// PhaseExpired is terminal; the expired breakdown stays on display.
	PhaseExpired Phase = "expired"
)

// Source tells where the current breakdown came from.
type Source string

const (
	SourceNone   Source = ""
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// Session is a copy of the countdown state handed to observers.
type Session struct {
	ID         string
	TargetText string
	Target     time.Time
	Breakdown  countdown.Breakdown
	Source     Source
	Fields     remote.Fields
	Phase      Phase
	Err        error
}

// Loading reports whether a submission is outstanding.
func (session Session) Loading() bool {
	return session.Phase == PhasePending
}

// Active reports whether a countdown is pending or running.
func (session Session) Active() bool {
	return session.Phase == PhasePending || session.Phase == PhaseActive
}

// Exists reports whether there is a session the user can stop.
func (session Session) Exists() bool {
	return session.ID != ""
}

// HasBreakdown reports whether there is something to display.
func (session Session) HasBreakdown() bool {
	return session.Phase == PhaseActive || session.Phase == PhaseExpired
}

// Ticking reports whether the refresh loop owns this session.
// Remote snapshots are shown as received and never recomputed locally.
func (session Session) Ticking() bool {
	return session.Phase == PhaseActive && session.Source == SourceLocal
}
