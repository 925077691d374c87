package scoring_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curator/scoring"
)

func decodeRecords(t *testing.T, raw string) []scoring.Record {
	t.Helper()
	var recs []scoring.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))
	return recs
}

func TestAggregateCollapsesEquivalentTeamNumbers(t *testing.T) {
	recs := decodeRecords(t, `[
		{"teamNumber": 100, "teamName": "Gearheads", "autoBasketHigh": 1},
		{"teamNumber": "100", "teamName": "Other Name", "autoBasketHigh": 5}
	]`)

	got := scoring.Aggregate(recs)
	require.Len(t, got, 1)
	assert.Equal(t, "100", got[0].TeamNumber)
	assert.Equal(t, "Gearheads", got[0].TeamName)
	assert.Equal(t, 2, got[0].Matches)
}

func TestAggregateUsesFirstRecord(t *testing.T) {
	recs := []scoring.Record{
		{TeamNumber: "7", TeamName: "Lucky", TeleopBasketHigh: 2},
		{TeamNumber: "8", AutoChamberHigh: 1},
		{TeamNumber: "7", TeamName: "Lucky", TeleopBasketHigh: 20},
	}

	got := scoring.Aggregate(recs)
	require.Len(t, got, 2)

	assert.Equal(t, "7", got[0].TeamNumber)
	assert.Equal(t, 16.0, got[0].Teleop)
	assert.Equal(t, 16.0, got[0].Total)

	assert.Equal(t, "8", got[1].TeamNumber)
	assert.Equal(t, scoring.UnknownTeamName, got[1].TeamName)
	assert.Equal(t, 10.0, got[1].Auto)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, scoring.Aggregate(nil))
}

func TestAggregateMean(t *testing.T) {
	recs := []scoring.Record{
		{TeamNumber: "7", TeleopBasketHigh: 2, EndgameAscentLevel: scoring.AscentLevel3},
		{TeamNumber: "7", TeleopBasketHigh: 4, EndgameAscentLevel: scoring.AscentLevel1},
	}
	got := scoring.AggregateWith(recs, scoring.Options{Weights: scoring.DefaultWeights(), Mode: scoring.ModeMean})
	require.Len(t, got, 1)
	assert.Equal(t, 24.0, got[0].Teleop)
	assert.Equal(t, 16.5, got[0].Endgame)
	assert.Equal(t, got[0].Auto+got[0].Teleop+got[0].Endgame, got[0].Total)
}

func TestAggregateMeanOfIdenticalRecordsMatchesFirst(t *testing.T) {
	rec := scoring.Record{TeamNumber: "11", AutoBasketHigh: 3, TeleopChamberHigh: 4, EndgameAscentLevel: scoring.AscentLevel2}
	recs := []scoring.Record{rec, rec, rec}

	first := scoring.Aggregate(recs)
	mean := scoring.AggregateWith(recs, scoring.Options{Weights: scoring.DefaultWeights(), Mode: scoring.ModeMean})
	assert.Equal(t, first, mean)
}

func TestAggregateCycleStats(t *testing.T) {
	recs := []scoring.Record{
		{TeamNumber: "3", TeleopCycleTimes: []float64{6, 4}},
		{TeamNumber: "3", TeleopCycleTimes: []float64{5}},
		{TeamNumber: "4"},
	}
	got := scoring.Aggregate(recs)
	require.Len(t, got, 2)
	assert.Equal(t, scoring.CycleStats{Count: 3, Mean: 5, Best: 4}, got[0].Cycles)
	assert.Equal(t, scoring.CycleStats{}, got[1].Cycles)
}

func TestParseMode(t *testing.T) {
	m, err := scoring.ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, scoring.ModeFirst, m)

	m, err = scoring.ParseMode("mean")
	require.NoError(t, err)
	assert.Equal(t, scoring.ModeMean, m)

	_, err = scoring.ParseMode("median")
	assert.Error(t, err)
}

func TestTeamRecords(t *testing.T) {
	recs := decodeRecords(t, `[
		{"teamNumber": 5, "qualificationNumber": 1},
		{"teamNumber": 6, "qualificationNumber": 1},
		{"teamNumber": "5", "qualificationNumber": 2}
	]`)
	got := scoring.TeamRecords(recs, "5")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].QualificationNumber)
	assert.Equal(t, 2, got[1].QualificationNumber)
}
