package scoring

// PhaseWeights are the points awarded per scored element in one phase.
type PhaseWeights struct {
	BasketHigh  float64 `yaml:"basket_high" json:"basketHigh"`
	BasketLow   float64 `yaml:"basket_low" json:"basketLow"`
	ChamberHigh float64 `yaml:"chamber_high" json:"chamberHigh"`
	ChamberLow  float64 `yaml:"chamber_low" json:"chamberLow"`
}

// Weights is the point-value table used by the calculator. Ascent tables map
// a level to its fixed value; levels missing from a table score nothing.
type Weights struct {
	Auto          PhaseWeights            `yaml:"auto" json:"auto"`
	Teleop        PhaseWeights            `yaml:"teleop" json:"teleop"`
	AutoAscent    map[AscentLevel]float64 `yaml:"auto_ascent" json:"autoAscent"`
	EndgameAscent map[AscentLevel]float64 `yaml:"endgame_ascent" json:"endgameAscent"`
}

// DefaultWeights returns the Into The Deep game manual values.
func DefaultWeights() Weights {
	phase := PhaseWeights{
		BasketHigh:  8,
		BasketLow:   4,
		ChamberHigh: 10,
		ChamberLow:  6,
	}
	return Weights{
		Auto:   phase,
		Teleop: phase,
		AutoAscent: map[AscentLevel]float64{
			AscentLevel1: 3,
		},
		EndgameAscent: map[AscentLevel]float64{
			AscentPark:   3,
			AscentLevel1: 3,
			AscentLevel2: 15,
			AscentLevel3: 30,
		},
	}
}

// Merge returns w with every non-zero value of o applied on top.
func (w Weights) Merge(o Weights) Weights {
	out := Weights{
		Auto:          w.Auto.merge(o.Auto),
		Teleop:        w.Teleop.merge(o.Teleop),
		AutoAscent:    mergeLevels(w.AutoAscent, o.AutoAscent),
		EndgameAscent: mergeLevels(w.EndgameAscent, o.EndgameAscent),
	}
	return out
}

func (p PhaseWeights) merge(o PhaseWeights) PhaseWeights {
	if o.BasketHigh > 0 {
		p.BasketHigh = o.BasketHigh
	}
	if o.BasketLow > 0 {
		p.BasketLow = o.BasketLow
	}
	if o.ChamberHigh > 0 {
		p.ChamberHigh = o.ChamberHigh
	}
	if o.ChamberLow > 0 {
		p.ChamberLow = o.ChamberLow
	}
	return p
}

func mergeLevels(base, over map[AscentLevel]float64) map[AscentLevel]float64 {
	out := make(map[AscentLevel]float64, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		if k == AscentNone || v < 0 {
			continue
		}
		out[k] = v
	}
	return out
}
