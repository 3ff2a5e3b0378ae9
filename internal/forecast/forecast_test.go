package forecast

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"sitebudget/internal/model"
)

func history(n int, amount float64) []model.Expense {
	out := make([]model.Expense, n)
	for i := range out {
		out[i] = model.Expense{
			Amount: amount,
			Date:   time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.Local),
		}
	}
	return out
}

func TestPredictCashFlowTooLittleHistory(t *testing.T) {
	for n := 0; n < 7; n++ {
		if p := PredictCashFlow(history(n, 100), 30, nil); p != nil {
			t.Errorf("%d expenses produced a prediction, want nil", n)
		}
	}
}

func TestPredictCashFlowShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := PredictCashFlow(history(10, 200), 30, rng)
	if p == nil {
		t.Fatal("expected a prediction")
	}
	if len(p.Days) != 30 {
		t.Fatalf("len(Days) = %d, want 30", len(p.Days))
	}
	if p.AverageDailySpend != 200 {
		t.Errorf("AverageDailySpend = %v, want 200", p.AverageDailySpend)
	}
	// Total uses the plain average, never the jittered series.
	if p.TotalPredicted != 6000 {
		t.Errorf("TotalPredicted = %v, want 6000", p.TotalPredicted)
	}

	for i, d := range p.Days {
		if d.Predicted < 160 || d.Predicted > 240 {
			t.Errorf("Days[%d].Predicted = %v, outside ±20%% of 200", i, d.Predicted)
		}
		if d.Confidence < 60 || d.Confidence > 95 {
			t.Errorf("Days[%d].Confidence = %v, outside [60, 95]", i, d.Confidence)
		}
		if i > 0 && d.Confidence > p.Days[i-1].Confidence {
			t.Errorf("confidence rose at day %d: %v > %v", i+1, d.Confidence, p.Days[i-1].Confidence)
		}
		if i > 0 && !d.Date.After(p.Days[i-1].Date) {
			t.Errorf("dates not chronological at day %d", i+1)
		}
	}

	// Day 1 confidence is 95 - 1.5 = 93.5; the floor binds from day 24.
	if p.Days[0].Confidence != 93.5 {
		t.Errorf("Days[0].Confidence = %v, want 93.5", p.Days[0].Confidence)
	}
	if last := p.Days[29].Confidence; last != 60 {
		t.Errorf("Days[29].Confidence = %v, want floor 60", last)
	}
}

func TestPredictCashFlowWindowLimit(t *testing.T) {
	// 40 expenses: 10 old at 1000, 30 recent at 100. Only the most
	// recent 30 feed the average.
	var expenses []model.Expense
	for i := 0; i < 10; i++ {
		expenses = append(expenses, model.Expense{
			Amount: 1000, Date: time.Date(2025, 6, 1+i, 0, 0, 0, 0, time.Local),
		})
	}
	expenses = append(expenses, history(30, 100)...)

	p := PredictCashFlow(expenses, 14, rand.New(rand.NewSource(1)))
	if p == nil {
		t.Fatal("expected a prediction")
	}
	if p.AverageDailySpend != 100 {
		t.Errorf("AverageDailySpend = %v, want 100 (window excludes old spikes)", p.AverageDailySpend)
	}
	if len(p.Days) != 14 {
		t.Errorf("len(Days) = %d, want 14", len(p.Days))
	}
}

func TestPredictCashFlowDefaultHorizon(t *testing.T) {
	p := PredictCashFlow(history(8, 50), 0, rand.New(rand.NewSource(1)))
	if p == nil {
		t.Fatal("expected a prediction")
	}
	if len(p.Days) != DefaultHorizonDays {
		t.Errorf("len(Days) = %d, want %d", len(p.Days), DefaultHorizonDays)
	}
	if math.Abs(p.TotalPredicted-50*float64(DefaultHorizonDays)) > 1e-9 {
		t.Errorf("TotalPredicted = %v", p.TotalPredicted)
	}
}
