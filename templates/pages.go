package templates

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"curator/scoring"
)

const (
	colourAuto    = "#2a9d8f"
	colourTeleop  = "#e9c46a"
	colourEndgame = "#e76f51"
)

// scoreBar is a stacked bar of the phase split. Widths need inline styles,
// so it is written by hand.
func scoreBar(s scoring.Scores) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="flex h-3 w-full rounded-full overflow-hidden bg-stone-200">`); err != nil {
			return err
		}
		if s.Total > 0 {
			for _, seg := range []struct {
				value  float64
				colour string
			}{{s.Auto, colourAuto}, {s.Teleop, colourTeleop}, {s.Endgame, colourEndgame}} {
				if _, err := fmt.Fprintf(w, `<div style="width:%.1f%%;background:%s"></div>`, seg.value/s.Total*100, seg.colour); err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func teamURL(team string) templ.SafeURL {
	return templ.URL("/teams/" + url.PathEscape(team))
}

var matchColumns = []string{"Qual", "Alliance", "Preload", "Auto", "Teleop", "Endgame", "Total", "Ascent", "Notes"}

func matchRow(rec scoring.Record, sc scoring.Scores) []string {
	return []string{
		strconv.Itoa(rec.QualificationNumber),
		string(rec.AllianceColour),
		string(rec.AutoPreload),
		formatScore(sc.Auto),
		formatScore(sc.Teleop),
		formatScore(sc.Endgame),
		formatScore(sc.Total),
		string(rec.EndgameAscentLevel),
		rec.ExtraNotes,
	}
}

// scores returns the scores of the i-th record, or zero scores when the
// caller did not supply them.
func (d TeamPageData) scores(i int) scoring.Scores {
	if i < len(d.Scores) {
		return d.Scores[i]
	}
	return scoring.Scores{}
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
