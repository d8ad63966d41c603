package models

type Phase string

const (
	PhaseFirst   Phase = "first-phase"
	PhaseSecond  Phase = "second-phase"
	PhaseResults Phase = "results"
)

// PhaseMachine tracks the active survey phase for the whole process.
// Transitions move forward only: first-phase -> second-phase -> results.
// The only way back is Reset.
type PhaseMachine struct {
	current Phase
}

func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{current: PhaseFirst}
}

// Current returns the active phase.
func (m *PhaseMachine) Current() Phase {
	return m.current
}

// Advance applies the single legal forward transition and reports whether
// the phase changed. Calling Advance in the results phase is a no-op,
// not an error.
func (m *PhaseMachine) Advance() bool {
	switch m.current {
	case PhaseFirst:
		m.current = PhaseSecond
		return true
	case PhaseSecond:
		m.current = PhaseResults
		return true
	default:
		return false
	}
}

// Reset unconditionally returns to first-phase. The caller is responsible
// for resetting the detection ledger in the same mutation step so no
// observer ever sees a reset phase paired with stale marks.
func (m *PhaseMachine) Reset() {
	m.current = PhaseFirst
}

func (m *PhaseMachine) IsResults() bool {
	return m.current == PhaseResults
}
