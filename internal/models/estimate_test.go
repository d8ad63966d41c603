package models_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckp1990/population-ecology-games/internal/models"
)

// buildRecords creates a ledger snapshot with the given mark overlap:
// both records marked in both phases, then first-only and second-only.
func buildRecords(both, firstOnly, secondOnly, unmarked int) map[string]models.DetectionRecord {
	records := make(map[string]models.DetectionRecord)
	n := 0
	add := func(rec models.DetectionRecord, count int) {
		for i := 0; i < count; i++ {
			records[fmt.Sprintf("p%d", n)] = rec
			n++
		}
	}
	add(models.DetectionRecord{FirstPhase: true, SecondPhase: true}, both)
	add(models.DetectionRecord{FirstPhase: true}, firstOnly)
	add(models.DetectionRecord{SecondPhase: true}, secondOnly)
	add(models.DetectionRecord{}, unmarked)
	return records
}

func TestComputeEstimate(t *testing.T) {
	t.Run("lincoln petersen with recaptures", func(t *testing.T) {
		// M=10, C=8, R=4 -> round(10*8/4) = 20
		records := buildRecords(4, 6, 4, 2)

		est := models.ComputeEstimate(records)

		assert.Equal(t, 10, est.Marked)
		assert.Equal(t, 8, est.Captured)
		assert.Equal(t, 4, est.Recaptured)
		assert.Equal(t, 16, est.ObservedTotal)
		require.NotNil(t, est.Estimate)
		assert.Equal(t, 20, *est.Estimate)
	})

	t.Run("rounds the quotient", func(t *testing.T) {
		// M=5, C=5, R=3 -> 25/3 = 8.33 -> 8
		records := buildRecords(3, 2, 2, 0)

		est := models.ComputeEstimate(records)

		require.NotNil(t, est.Estimate)
		assert.Equal(t, 8, *est.Estimate)
	})

	t.Run("zero recaptures yields absent estimate", func(t *testing.T) {
		records := buildRecords(0, 5, 3, 1)

		est := models.ComputeEstimate(records)

		assert.Equal(t, 5, est.Marked)
		assert.Equal(t, 3, est.Captured)
		assert.Equal(t, 0, est.Recaptured)
		assert.Nil(t, est.Estimate, "estimate must be absent, not zero")
		assert.Nil(t, est.Chapman)
		assert.Nil(t, est.CILow)
		assert.Nil(t, est.CIHigh)
	})

	t.Run("empty ledger", func(t *testing.T) {
		est := models.ComputeEstimate(nil)

		assert.Equal(t, 0, est.ObservedTotal)
		assert.Nil(t, est.Estimate)
	})

	t.Run("chapman correction and confidence interval", func(t *testing.T) {
		// M=10, C=8, R=4 -> chapman = 11*9/5 - 1 = 18.8
		records := buildRecords(4, 6, 4, 0)

		est := models.ComputeEstimate(records)

		require.NotNil(t, est.Chapman)
		assert.InDelta(t, 18.8, *est.Chapman, 1e-9)
		require.NotNil(t, est.CILow)
		require.NotNil(t, est.CIHigh)
		assert.Less(t, *est.CILow, *est.Chapman)
		assert.Greater(t, *est.CIHigh, *est.Chapman)
		assert.GreaterOrEqual(t, *est.CILow, 0.0)
	})

	t.Run("deterministic", func(t *testing.T) {
		records := buildRecords(4, 6, 4, 2)

		assert.Equal(t, models.ComputeEstimate(records), models.ComputeEstimate(records))
	})
}
