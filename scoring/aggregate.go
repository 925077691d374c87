package scoring

import "fmt"

const UnknownTeamName = "Unknown"

// Mode selects how a team's records become its displayed scores.
type Mode string

const (
	// ModeFirst scores the team's first record in store order only.
	ModeFirst Mode = "first"
	// ModeMean averages each phase over all of the team's records.
	ModeMean Mode = "mean"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFirst:
		return ModeFirst, nil
	case ModeMean:
		return ModeMean, nil
	}
	return "", fmt.Errorf("unknown aggregation mode %q", s)
}

type Options struct {
	Weights Weights
	Mode    Mode
}

// CycleStats summarise the recorded teleop cycle times of a team.
type CycleStats struct {
	Count int     `json:"count" yaml:"count"`
	Mean  float64 `json:"mean" yaml:"mean"`
	Best  float64 `json:"best" yaml:"best"`
}

type TeamSummary struct {
	TeamNumber string `json:"teamNumber" yaml:"team_number"`
	TeamName   string `json:"teamName" yaml:"team_name"`
	Scores     `yaml:",inline"`
	Matches    int        `json:"matches" yaml:"matches"`
	Cycles     CycleStats `json:"cycles" yaml:"cycles"`
}

// Aggregate builds one summary per team with the default weights, using the
// team's first record for both its name and its scores.
func Aggregate(records []Record) []TeamSummary {
	return AggregateWith(records, Options{Weights: DefaultWeights(), Mode: ModeFirst})
}

// AggregateWith groups records by canonical team key. Summaries come out in
// order of each team's first appearance; ordering for display is left to
// FilterAndSort.
func AggregateWith(records []Record, opts Options) []TeamSummary {
	var order []string
	groups := make(map[string][]Record)
	for _, rec := range records {
		key := rec.TeamNumber.Key()
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}

	summaries := make([]TeamSummary, 0, len(order))
	for _, key := range order {
		summaries = append(summaries, summarise(key, groups[key], opts))
	}
	return summaries
}

func summarise(key string, recs []Record, opts Options) TeamSummary {
	first := recs[0]
	name := first.TeamName
	if name == "" {
		name = UnknownTeamName
	}

	var scores Scores
	switch opts.Mode {
	case ModeMean:
		scores = meanScores(recs, opts.Weights)
	default:
		scores = opts.Weights.Calculate(first)
	}

	return TeamSummary{
		TeamNumber: key,
		TeamName:   name,
		Scores:     scores,
		Matches:    len(recs),
		Cycles:     cycleStats(recs),
	}
}

func meanScores(recs []Record, w Weights) Scores {
	var auto, teleop, endgame float64
	for _, rec := range recs {
		s := w.Calculate(rec)
		auto += s.Auto
		teleop += s.Teleop
		endgame += s.Endgame
	}
	n := float64(len(recs))
	return newScores(auto/n, teleop/n, endgame/n)
}

func cycleStats(recs []Record) CycleStats {
	var stats CycleStats
	var sum float64
	for _, rec := range recs {
		for _, t := range rec.TeleopCycleTimes {
			if t <= 0 {
				continue
			}
			if stats.Count == 0 || t < stats.Best {
				stats.Best = t
			}
			stats.Count++
			sum += t
		}
	}
	if stats.Count > 0 {
		stats.Mean = sum / float64(stats.Count)
	}
	return stats
}

// TeamRecords returns the records of one team in store order.
func TeamRecords(records []Record, team TeamNumber) []Record {
	key := team.Key()
	var out []Record
	for _, rec := range records {
		if rec.TeamNumber.Key() == key {
			out = append(out, rec)
		}
	}
	return out
}
