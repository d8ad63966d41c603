package services

import "sort"

// SurveyRow is one ledger entry in the CSV export consumed by the
// offline plotting workflow.
type SurveyRow struct {
	Name        string `csv:"name"`
	FirstPhase  bool   `csv:"first_phase"`
	SecondPhase bool   `csv:"second_phase"`
}

// SurveyRows flattens the latest ledger snapshot into rows sorted by
// name, so repeated exports of the same session diff cleanly.
func (h *Hub) SurveyRows() []SurveyRow {
	state := h.State()

	rows := make([]SurveyRow, 0, len(state.DetectionLedger))
	for name, rec := range state.DetectionLedger {
		rows = append(rows, SurveyRow{
			Name:        name,
			FirstPhase:  rec.FirstPhase,
			SecondPhase: rec.SecondPhase,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
