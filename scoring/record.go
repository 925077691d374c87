package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Alliance string

const (
	AllianceRed  Alliance = "Red"
	AllianceBlue Alliance = "Blue"
)

type Preload string

const (
	PreloadSpecimen Preload = "Specimen"
	PreloadSample   Preload = "Sample"
	PreloadNothing  Preload = "Nothing"
)

type AscentLevel string

const (
	AscentNone   AscentLevel = "N/A"
	AscentPark   AscentLevel = "Park"
	AscentLevel1 AscentLevel = "Level 1"
	AscentLevel2 AscentLevel = "Level 2"
	AscentLevel3 AscentLevel = "Level 3"
)

// Record is one scouting observation of one team in one qualification match.
// Counter fields left out of the JSON decode to zero.
type Record struct {
	ID          string    `json:"id,omitempty" yaml:"id,omitempty"`
	SubmittedAt time.Time `json:"submittedAt,omitzero" yaml:"submitted_at,omitempty"`

	TeamNumber          TeamNumber `json:"teamNumber" yaml:"team_number"`
	TeamName            string     `json:"teamName,omitempty" yaml:"team_name,omitempty"`
	QualificationNumber int        `json:"qualificationNumber" yaml:"qualification_number"`
	AllianceColour      Alliance   `json:"allianceColour" yaml:"alliance_colour"`

	AutoPreload     Preload     `json:"autoPreload" yaml:"auto_preload"`
	AutoBasketHigh  int         `json:"autoBasketHigh" yaml:"auto_basket_high"`
	AutoBasketLow   int         `json:"autoBasketLow" yaml:"auto_basket_low"`
	AutoChamberHigh int         `json:"autoChamberHigh" yaml:"auto_chamber_high"`
	AutoChamberLow  int         `json:"autoChamberLow" yaml:"auto_chamber_low"`
	AutoAscentLevel AscentLevel `json:"autoAscentLevel,omitempty" yaml:"auto_ascent_level,omitempty"`

	TeleopBasketHigh  int       `json:"teleopBasketHigh" yaml:"teleop_basket_high"`
	TeleopBasketLow   int       `json:"teleopBasketLow" yaml:"teleop_basket_low"`
	TeleopChamberHigh int       `json:"teleopChamberHigh" yaml:"teleop_chamber_high"`
	TeleopChamberLow  int       `json:"teleopChamberLow" yaml:"teleop_chamber_low"`
	TeleopCycleTimes  []float64 `json:"teleopCycleTimes,omitempty" yaml:"teleop_cycle_times,omitempty"`

	EndgameAscentLevel AscentLevel `json:"endgameAscentLevel,omitempty" yaml:"endgame_ascent_level,omitempty"`
	EndgameAscentTime  float64     `json:"endgameAscentTime,omitempty" yaml:"endgame_ascent_time,omitempty"`

	ExtraNotes string `json:"extraNotes,omitempty" yaml:"extra_notes,omitempty"`
}

// TeamNumber holds a team identifier as it was entered. Forms send it either
// as a JSON number or as a string; both decode here.
type TeamNumber string

// Key is the canonical grouping key. Numeric values are formatted in their
// shortest form so 100, "100" and "100.0" share one key.
func (t TeamNumber) Key() string {
	s := strings.TrimSpace(string(t))
	if s == "" {
		return ""
	}
	if f, ok := finite(s); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// finite parses s as a number. NaN and the infinities are not team numbers
// and stay text.
func finite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (t TeamNumber) String() string {
	return t.Key()
}

func (t TeamNumber) IsZero() bool {
	return t.Key() == ""
}

func (t *TeamNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TeamNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("team number: %w", err)
	}
	*t = TeamNumber(n.String())
	return nil
}

// MarshalJSON writes numeric team numbers back as JSON numbers.
func (t TeamNumber) MarshalJSON() ([]byte, error) {
	key := t.Key()
	if _, ok := finite(key); ok {
		return []byte(key), nil
	}
	return json.Marshal(key)
}
