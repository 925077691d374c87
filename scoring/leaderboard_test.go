package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"curator/scoring"
)

func summary(number, name string, auto, teleop, endgame float64) scoring.TeamSummary {
	return scoring.TeamSummary{
		TeamNumber: number,
		TeamName:   name,
		Scores: scoring.Scores{
			Auto:    auto,
			Teleop:  teleop,
			Endgame: endgame,
			Total:   auto + teleop + endgame,
		},
	}
}

func numbers(summaries []scoring.TeamSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.TeamNumber)
	}
	return out
}

func TestFilterAndSortEmptyQuerySortsByTotal(t *testing.T) {
	in := []scoring.TeamSummary{
		summary("1", "One", 10, 0, 0),
		summary("2", "Two", 0, 30, 0),
		summary("3", "Three", 5, 5, 10),
		summary("4", "Four", 20, 0, 0),
	}

	got := scoring.FilterAndSort(in, "", scoring.SortTotal)
	assert.Equal(t, []string{"2", "3", "4", "1"}, numbers(got))
}

func TestFilterAndSortIsStable(t *testing.T) {
	in := []scoring.TeamSummary{
		summary("10", "A", 10, 0, 0),
		summary("20", "B", 0, 10, 0),
		summary("30", "C", 50, 0, 0),
		summary("40", "D", 0, 0, 10),
	}

	got := scoring.FilterAndSort(in, "", scoring.SortTotal)
	assert.Equal(t, []string{"30", "10", "20", "40"}, numbers(got))
}

func TestFilterAndSortByPhase(t *testing.T) {
	in := []scoring.TeamSummary{
		summary("1", "", 1, 9, 5),
		summary("2", "", 9, 1, 1),
		summary("3", "", 5, 5, 9),
	}

	assert.Equal(t, []string{"2", "3", "1"}, numbers(scoring.FilterAndSort(in, "", scoring.SortAuto)))
	assert.Equal(t, []string{"1", "3", "2"}, numbers(scoring.FilterAndSort(in, "", scoring.SortTeleop)))
	assert.Equal(t, []string{"3", "1", "2"}, numbers(scoring.FilterAndSort(in, "", scoring.SortEndgame)))
}

func TestFilterAndSortUnknownKeyKeepsOrder(t *testing.T) {
	in := []scoring.TeamSummary{
		summary("1", "", 1, 0, 0),
		summary("2", "", 9, 0, 0),
		summary("3", "", 5, 0, 0),
	}
	got := scoring.FilterAndSort(in, "", scoring.ParseSortKey("name"))
	assert.Equal(t, []string{"1", "2", "3"}, numbers(got))
}

func TestFilterAndSortQuery(t *testing.T) {
	in := []scoring.TeamSummary{
		summary("16405", "Robo Raiders", 0, 0, 0),
		summary("2056", "Orbit", 0, 0, 0),
		summary("99", "Mystery", 0, 0, 0),
	}

	assert.Equal(t, []string{"16405"}, numbers(scoring.FilterAndSort(in, "640", scoring.SortTotal)))
	assert.Equal(t, []string{"16405"}, numbers(scoring.FilterAndSort(in, "raiders", scoring.SortTotal)))
	assert.Equal(t, []string{"2056"}, numbers(scoring.FilterAndSort(in, "ORB", scoring.SortTotal)))
	assert.Equal(t, []string{"16405", "2056"}, numbers(scoring.FilterAndSort(in, "o", scoring.SortTotal)))
	assert.Empty(t, scoring.FilterAndSort(in, "zzz", scoring.SortTotal))
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	in := []scoring.TeamSummary{
		summary("1", "", 1, 0, 0),
		summary("2", "", 9, 0, 0),
	}
	_ = scoring.FilterAndSort(in, "", scoring.SortTotal)
	assert.Equal(t, []string{"1", "2"}, numbers(in))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, scoring.SortTeleop, scoring.ParseSortKey(" Teleop "))
	assert.Equal(t, scoring.SortKey("bogus"), scoring.ParseSortKey("bogus"))
}
