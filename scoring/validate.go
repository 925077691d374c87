package scoring

import (
	"fmt"
	"strings"
)

// ValidationError lists every field of a record that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range fieldOrder {
		if msg, ok := e.Fields[name]; ok {
			parts = append(parts, name+": "+msg)
		}
	}
	return "invalid submission: " + strings.Join(parts, ", ")
}

var fieldOrder = []string{
	"teamNumber", "qualificationNumber", "allianceColour",
	"autoPreload", "autoBasketHigh", "autoBasketLow", "autoChamberHigh", "autoChamberLow", "autoAscentLevel",
	"teleopBasketHigh", "teleopBasketLow", "teleopChamberHigh", "teleopChamberLow", "teleopCycleTimes",
	"endgameAscentLevel", "endgameAscentTime",
}

// Validate checks a record at the form boundary. Scoring never calls it.
func (r Record) Validate() error {
	fields := map[string]string{}

	if r.TeamNumber.IsZero() {
		fields["teamNumber"] = "required"
	}
	if r.QualificationNumber <= 0 {
		fields["qualificationNumber"] = "must be a positive match number"
	}
	switch r.AllianceColour {
	case AllianceRed, AllianceBlue:
	case "":
		fields["allianceColour"] = "required"
	default:
		fields["allianceColour"] = fmt.Sprintf("unknown alliance %q", r.AllianceColour)
	}
	switch r.AutoPreload {
	case PreloadSpecimen, PreloadSample, PreloadNothing:
	case "":
		fields["autoPreload"] = "required"
	default:
		fields["autoPreload"] = fmt.Sprintf("unknown preload %q", r.AutoPreload)
	}

	counters := map[string]int{
		"autoBasketHigh":    r.AutoBasketHigh,
		"autoBasketLow":     r.AutoBasketLow,
		"autoChamberHigh":   r.AutoChamberHigh,
		"autoChamberLow":    r.AutoChamberLow,
		"teleopBasketHigh":  r.TeleopBasketHigh,
		"teleopBasketLow":   r.TeleopBasketLow,
		"teleopChamberHigh": r.TeleopChamberHigh,
		"teleopChamberLow":  r.TeleopChamberLow,
	}
	for name, v := range counters {
		if v < 0 {
			fields[name] = "must not be negative"
		}
	}

	for i, t := range r.TeleopCycleTimes {
		if t <= 0 {
			fields["teleopCycleTimes"] = fmt.Sprintf("entry %d must be positive", i)
			break
		}
	}

	if !knownLevel(r.AutoAscentLevel, AscentLevel1) {
		fields["autoAscentLevel"] = fmt.Sprintf("unknown level %q", r.AutoAscentLevel)
	}
	if !knownLevel(r.EndgameAscentLevel, AscentPark, AscentLevel1, AscentLevel2, AscentLevel3) {
		fields["endgameAscentLevel"] = fmt.Sprintf("unknown level %q", r.EndgameAscentLevel)
	}
	if r.EndgameAscentTime < 0 {
		fields["endgameAscentTime"] = "must not be negative"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func knownLevel(l AscentLevel, allowed ...AscentLevel) bool {
	if l == "" || l == AscentNone {
		return true
	}
	for _, a := range allowed {
		if l == a {
			return true
		}
	}
	return false
}
