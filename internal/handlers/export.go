package handlers

import (
	"github.com/gocarina/gocsv"
	"github.com/pocketbase/pocketbase/core"

	"github.com/ckp1990/population-ecology-games/internal/services"
)

// HandleSurveyCSV streams the detection ledger as CSV, one row per
// display name, for offline analysis of the session.
func HandleSurveyCSV(hub *services.Hub) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rows := hub.SurveyRows()

		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="survey.csv"`)
		return gocsv.Marshal(&rows, e.Response)
	}
}
