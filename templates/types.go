package templates

import "curator/scoring"

type SortOption struct {
	Key   scoring.SortKey
	Label string
}

var SortOptions = []SortOption{
	{scoring.SortTotal, "Total Score"},
	{scoring.SortAuto, "Auto Score"},
	{scoring.SortTeleop, "Teleop Score"},
	{scoring.SortEndgame, "Endgame Score"},
}

type LeaderboardPageData struct {
	Query       string
	Sort        scoring.SortKey
	Mode        scoring.Mode
	Teams       []scoring.TeamSummary
	Submissions int
}

type TeamPageData struct {
	Summary scoring.TeamSummary
	Records []scoring.Record
	Scores  []scoring.Scores // per record, same order as Records
}

// SubmitResult is the answer to a form submission. Saved is true once the
// record is stored locally, whatever happened to the spreadsheet export.
type SubmitResult struct {
	Saved    bool   `json:"saved"`
	Exported bool   `json:"exported"`
	Message  string `json:"message"`
}
