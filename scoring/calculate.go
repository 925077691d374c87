package scoring

// Scores are the phase scores of one record, or of one team once aggregated.
type Scores struct {
	Auto    float64 `json:"autoScore" yaml:"auto_score"`
	Teleop  float64 `json:"teleopScore" yaml:"teleop_score"`
	Endgame float64 `json:"endgameScore" yaml:"endgame_score"`
	Total   float64 `json:"totalScore" yaml:"total_score"`
}

// CalculateScores scores rec with DefaultWeights.
func CalculateScores(rec Record) Scores {
	return DefaultWeights().Calculate(rec)
}

// Calculate maps one record to its phase scores. It never fails: negative
// counters count as zero and unknown ascent levels are worth nothing.
func (w Weights) Calculate(rec Record) Scores {
	auto := w.Auto.score(rec.AutoBasketHigh, rec.AutoBasketLow, rec.AutoChamberHigh, rec.AutoChamberLow) +
		w.AutoAscent[rec.AutoAscentLevel]
	teleop := w.Teleop.score(rec.TeleopBasketHigh, rec.TeleopBasketLow, rec.TeleopChamberHigh, rec.TeleopChamberLow)
	endgame := w.EndgameAscent[rec.EndgameAscentLevel]

	return newScores(auto, teleop, endgame)
}

func (p PhaseWeights) score(basketHigh, basketLow, chamberHigh, chamberLow int) float64 {
	return float64(count(basketHigh))*p.BasketHigh +
		float64(count(basketLow))*p.BasketLow +
		float64(count(chamberHigh))*p.ChamberHigh +
		float64(count(chamberLow))*p.ChamberLow
}

func newScores(auto, teleop, endgame float64) Scores {
	return Scores{
		Auto:    auto,
		Teleop:  teleop,
		Endgame: endgame,
		Total:   auto + teleop + endgame,
	}
}

func count(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
