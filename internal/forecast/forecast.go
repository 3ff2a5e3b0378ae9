// Package forecast predicts near-term cash flow from recent expense
// history using a moving average with randomized per-day variance.
package forecast

import (
	"math/rand"
	"time"

	"sitebudget/internal/budget"
	"sitebudget/internal/model"
)

// DefaultHorizonDays is the standard prediction horizon.
const DefaultHorizonDays = 30

// windowSize caps how far back the moving average looks.
const windowSize = 30

// minSamples is the fewest expenses in the window that still support a
// prediction.
const minSamples = 7

// Day is a single predicted day.
type Day struct {
	Date       time.Time
	Predicted  float64
	Confidence float64
}

// Prediction is the cash flow outlook over a horizon. TotalPredicted is
// the plain average times the horizon, deliberately not the sum of the
// randomized per-day values; the total is the stable figure, the series
// carries the jitter.
type Prediction struct {
	Days              []Day
	AverageDailySpend float64
	TotalPredicted    float64
}

// PredictCashFlow builds a daily spend prediction from the most recent
// expenses. Returns nil when the history is too thin to say anything.
// rng may be nil, in which case each call draws a fresh random sequence.
func PredictCashFlow(expenses []model.Expense, horizonDays int, rng *rand.Rand) *Prediction {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	recent := budget.SortByDateDesc(expenses)
	if len(recent) > windowSize {
		recent = recent[:windowSize]
	}
	if len(recent) < minSamples {
		return nil
	}

	var sum float64
	for _, e := range recent {
		sum += e.Amount
	}
	avg := sum / float64(len(recent))

	days := make([]Day, 0, horizonDays)
	now := time.Now()
	for i := 1; i <= horizonDays; i++ {
		variance := (rng.Float64() - 0.5) * 0.4 // uniform in [-20%, +20%)
		confidence := 95 - float64(i)*1.5
		if confidence < 60 {
			confidence = 60
		}
		days = append(days, Day{
			Date:       now.AddDate(0, 0, i),
			Predicted:  avg * (1 + variance),
			Confidence: confidence,
		})
	}

	return &Prediction{
		Days:              days,
		AverageDailySpend: avg,
		TotalPredicted:    avg * float64(horizonDays),
	}
}
