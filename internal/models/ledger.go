package models

// DetectionRecord holds the two independent per-phase flags for one
// display name. A flag goes false -> true at most once per phase and
// never reverts except through a full ledger reset.
type DetectionRecord struct {
	FirstPhase  bool `json:"firstPhase"`
	SecondPhase bool `json:"secondPhase"`
}

// DetectionLedger maps display names to detection records.
// It is keyed by name rather than connection identity so a participant
// who disconnects and rejoins under the same name keeps their marks.
// Connections sharing a name share one record.
type DetectionLedger struct {
	records map[string]*DetectionRecord
}

func NewDetectionLedger() *DetectionLedger {
	return &DetectionLedger{
		records: make(map[string]*DetectionRecord),
	}
}

// EnsureRecord creates a zeroed record for the name if absent. Idempotent.
func (l *DetectionLedger) EnsureRecord(name string) {
	if _, ok := l.records[name]; !ok {
		l.records[name] = &DetectionRecord{}
	}
}

// MarkDetected sets the flag for the given phase if it is not already set.
// It reports whether a change occurred: false means the flag was already
// set, or the phase accepts no detections (results). A stale trigger that
// arrives after the phase advanced is silently absorbed here, not an error.
func (l *DetectionLedger) MarkDetected(name string, phase Phase) bool {
	rec, ok := l.records[name]
	if !ok {
		rec = &DetectionRecord{}
		l.records[name] = rec
	}

	switch phase {
	case PhaseFirst:
		if rec.FirstPhase {
			return false
		}
		rec.FirstPhase = true
		return true
	case PhaseSecond:
		if rec.SecondPhase {
			return false
		}
		rec.SecondPhase = true
		return true
	default:
		return false
	}
}

// Reset clears both flags on every record. Names are preserved so a
// returning participant still appears in the roster after a reset.
func (l *DetectionLedger) Reset() {
	for _, rec := range l.records {
		rec.FirstPhase = false
		rec.SecondPhase = false
	}
}

// Records returns a value copy of the ledger for snapshot broadcasts.
func (l *DetectionLedger) Records() map[string]DetectionRecord {
	out := make(map[string]DetectionRecord, len(l.records))
	for name, rec := range l.records {
		out[name] = *rec
	}
	return out
}

// Len returns the number of distinct names ever seen.
func (l *DetectionLedger) Len() int {
	return len(l.records)
}
