package models

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Estimate is the output of the Lincoln-Petersen closed-population
// estimator over the detection ledger.
//
// Marked (M) counts names detected in the first phase, Captured (C)
// names detected in the second, Recaptured (R) names detected in both.
// Estimate is round(M*C/R) and stays nil while R == 0: the formula is
// mathematically undefined there and must surface as absent, never as a
// misleading zero.
//
// Chapman carries the bias-corrected variant (M+1)(C+1)/(R+1)-1 with a
// 95% confidence interval from the usual normal approximation, for the
// results dashboard.
type Estimate struct {
	Marked        int      `json:"marked"`
	Captured      int      `json:"captured"`
	Recaptured    int      `json:"recaptured"`
	Estimate      *int     `json:"estimate"`
	ObservedTotal int      `json:"observedTotal"`
	Chapman       *float64 `json:"chapman,omitempty"`
	CILow         *float64 `json:"ciLow,omitempty"`
	CIHigh        *float64 `json:"ciHigh,omitempty"`
}

// ComputeEstimate derives the population estimate from a ledger snapshot.
// Pure and deterministic; recomputed on every snapshot broadcast, never
// cached across mutations.
func ComputeEstimate(records map[string]DetectionRecord) Estimate {
	est := Estimate{ObservedTotal: len(records)}

	for _, rec := range records {
		if rec.FirstPhase {
			est.Marked++
		}
		if rec.SecondPhase {
			est.Captured++
		}
		if rec.FirstPhase && rec.SecondPhase {
			est.Recaptured++
		}
	}

	if est.Recaptured == 0 {
		return est
	}

	m := float64(est.Marked)
	c := float64(est.Captured)
	r := float64(est.Recaptured)

	lp := int(math.Round(m * c / r))
	est.Estimate = &lp

	chapman := (m+1)*(c+1)/(r+1) - 1
	est.Chapman = &chapman

	variance := (m + 1) * (c + 1) * (m - r) * (c - r) / ((r + 1) * (r + 1) * (r + 2))
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
	margin := z * math.Sqrt(variance)
	low := math.Max(0, chapman-margin)
	high := chapman + margin
	est.CILow = &low
	est.CIHigh = &high

	return est
}
