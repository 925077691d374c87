package scoring_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/scoring"
)

func TestCalculateScoresEmptyRecord(t *testing.T) {
	assert.Equal(t, scoring.Scores{}, scoring.CalculateScores(scoring.Record{}))

	var rec scoring.Record
	require.NoError(t, json.Unmarshal([]byte(`{}`), &rec))
	assert.Equal(t, scoring.Scores{}, scoring.CalculateScores(rec))
}

func TestCalculateScoresExample(t *testing.T) {
	rec := scoring.Record{TeamNumber: "42", AutoBasketHigh: 2, AutoBasketLow: 1}

	s := scoring.CalculateScores(rec)
	assert.Equal(t, 20.0, s.Auto)
	assert.Equal(t, 0.0, s.Teleop)
	assert.Equal(t, 0.0, s.Endgame)
	assert.Equal(t, 20.0, s.Total)
}

func TestCalculateScoresTotalIsSumOfPhases(t *testing.T) {
	recs := []scoring.Record{
		{AutoChamberHigh: 1, TeleopBasketHigh: 5, EndgameAscentLevel: scoring.AscentLevel2},
		{AutoAscentLevel: scoring.AscentLevel1, TeleopChamberLow: 3, TeleopBasketLow: 7, EndgameAscentLevel: scoring.AscentPark},
		{AutoBasketLow: 4, AutoChamberLow: 2, EndgameAscentLevel: scoring.AscentLevel3},
	}
	for _, rec := range recs {
		s := scoring.CalculateScores(rec)
		assert.Equal(t, s.Auto+s.Teleop+s.Endgame, s.Total)
	}

	s := scoring.CalculateScores(recs[1])
	assert.Equal(t, 3.0, s.Auto)
	assert.Equal(t, 3*6.0+7*4.0, s.Teleop)
	assert.Equal(t, 3.0, s.Endgame)
}

func TestCalculateScoresCounterIncrement(t *testing.T) {
	w := scoring.DefaultWeights()
	base := scoring.Record{
		AutoBasketHigh: 1, AutoBasketLow: 2, AutoChamberHigh: 3, AutoChamberLow: 4,
		TeleopBasketHigh: 5, TeleopBasketLow: 6, TeleopChamberHigh: 7, TeleopChamberLow: 8,
		EndgameAscentLevel: scoring.AscentLevel1,
	}

	tests := []struct {
		name   string
		bump   func(*scoring.Record)
		weight float64
		phase  func(scoring.Scores) float64
		other  func(scoring.Scores) float64
	}{
		{"autoBasketHigh", func(r *scoring.Record) { r.AutoBasketHigh++ }, w.Auto.BasketHigh, autoOf, teleopOf},
		{"autoBasketLow", func(r *scoring.Record) { r.AutoBasketLow++ }, w.Auto.BasketLow, autoOf, teleopOf},
		{"autoChamberHigh", func(r *scoring.Record) { r.AutoChamberHigh++ }, w.Auto.ChamberHigh, autoOf, teleopOf},
		{"autoChamberLow", func(r *scoring.Record) { r.AutoChamberLow++ }, w.Auto.ChamberLow, autoOf, teleopOf},
		{"teleopBasketHigh", func(r *scoring.Record) { r.TeleopBasketHigh++ }, w.Teleop.BasketHigh, teleopOf, autoOf},
		{"teleopBasketLow", func(r *scoring.Record) { r.TeleopBasketLow++ }, w.Teleop.BasketLow, teleopOf, autoOf},
		{"teleopChamberHigh", func(r *scoring.Record) { r.TeleopChamberHigh++ }, w.Teleop.ChamberHigh, teleopOf, autoOf},
		{"teleopChamberLow", func(r *scoring.Record) { r.TeleopChamberLow++ }, w.Teleop.ChamberLow, teleopOf, autoOf},
	}

	before := w.Calculate(base)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := base
			tt.bump(&rec)
			after := w.Calculate(rec)

			require.Greater(t, tt.weight, 0.0)
			assert.Equal(t, tt.phase(before)+tt.weight, tt.phase(after))
			assert.Equal(t, before.Endgame, after.Endgame)
			assert.Equal(t, before.Total+tt.weight, after.Total)
			assert.Equal(t, tt.other(before), tt.other(after))
		})
	}
}

func TestCalculateScoresBasketHighOutweighsLow(t *testing.T) {
	w := scoring.DefaultWeights()
	assert.Greater(t, w.Auto.BasketHigh, w.Auto.BasketLow)
	assert.Greater(t, w.Teleop.ChamberHigh, w.Teleop.ChamberLow)
}

func TestCalculateScoresUnknownLevelsAndNegatives(t *testing.T) {
	rec := scoring.Record{
		AutoAscentLevel:    scoring.AscentNone,
		EndgameAscentLevel: "Level 9",
		AutoBasketHigh:     -3,
		TeleopChamberLow:   -1,
	}
	assert.Equal(t, scoring.Scores{}, scoring.CalculateScores(rec))
}

func TestWeightsMerge(t *testing.T) {
	w := scoring.DefaultWeights().Merge(scoring.Weights{
		Teleop:        scoring.PhaseWeights{BasketHigh: 9},
		EndgameAscent: map[scoring.AscentLevel]float64{scoring.AscentPark: 0, scoring.AscentNone: 50},
	})

	assert.Equal(t, 9.0, w.Teleop.BasketHigh)
	assert.Equal(t, 4.0, w.Teleop.BasketLow)
	assert.Equal(t, 8.0, w.Auto.BasketHigh)
	assert.Equal(t, 0.0, w.EndgameAscent[scoring.AscentPark])
	assert.Equal(t, 30.0, w.EndgameAscent[scoring.AscentLevel3])
	assert.Zero(t, w.Calculate(scoring.Record{EndgameAscentLevel: scoring.AscentNone}).Endgame)

	// the defaults are not shared with the merged table
	assert.Equal(t, 3.0, scoring.DefaultWeights().EndgameAscent[scoring.AscentPark])
}

func autoOf(s scoring.Scores) float64   { return s.Auto }
func teleopOf(s scoring.Scores) float64 { return s.Teleop }
