package transfer

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"curator/scoring"
)

// Columns is the flat row layout used for spreadsheets and CSV files.
var Columns = []string{
	"Team Number", "Team Name", "Qualification Number", "Alliance Colour",
	"Auto Preload", "Auto Basket High", "Auto Basket Low", "Auto Chamber High", "Auto Chamber Low", "Auto Ascent Level",
	"Teleop Basket High", "Teleop Basket Low", "Teleop Chamber High", "Teleop Chamber Low", "Teleop Cycle Times",
	"Endgame Ascent Level", "Endgame Ascent Time", "Extra Notes",
}

// Row flattens rec in Columns order.
func Row(rec scoring.Record) []string {
	cycles := make([]string, 0, len(rec.TeleopCycleTimes))
	for _, c := range rec.TeleopCycleTimes {
		cycles = append(cycles, formatFloat(c))
	}

	return []string{
		rec.TeamNumber.Key(),
		rec.TeamName,
		strconv.Itoa(rec.QualificationNumber),
		string(rec.AllianceColour),
		string(rec.AutoPreload),
		strconv.Itoa(rec.AutoBasketHigh),
		strconv.Itoa(rec.AutoBasketLow),
		strconv.Itoa(rec.AutoChamberHigh),
		strconv.Itoa(rec.AutoChamberLow),
		string(rec.AutoAscentLevel),
		strconv.Itoa(rec.TeleopBasketHigh),
		strconv.Itoa(rec.TeleopBasketLow),
		strconv.Itoa(rec.TeleopChamberHigh),
		strconv.Itoa(rec.TeleopChamberLow),
		strings.Join(cycles, ","),
		string(rec.EndgameAscentLevel),
		formatFloat(rec.EndgameAscentTime),
		rec.ExtraNotes,
	}
}

func WriteCSV(w io.Writer, recs []scoring.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := cw.Write(Row(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
