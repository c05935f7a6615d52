package rubric

// Band is a closed interval of metric values mapped to a score.
// A nil bound is open on that side.
type Band struct {
	Min   *float64 `yaml:"min,omitempty"`
	Max   *float64 `yaml:"max,omitempty"`
	Score float64  `yaml:"score"`
	Label string   `yaml:"label,omitempty"`
}

// Contains reports whether v lies within the band, bounds inclusive.
func (b Band) Contains(v float64) bool {
	if b.Min != nil && v < *b.Min {
		return false
	}
	if b.Max != nil && v > *b.Max {
		return false
	}
	return true
}

// BandTable is an ordered list of bands; the first containing band wins.
type BandTable struct {
	Bands        []Band  `yaml:"bands"`
	DefaultScore float64 `yaml:"default_score"`
	DefaultLabel string  `yaml:"default_label,omitempty"`
}

// Lookup returns the score and label of the first band containing v,
// or the table default when none does.
func (t BandTable) Lookup(v float64) (float64, string) {
	for _, b := range t.Bands {
		if b.Contains(v) {
			return b.Score, b.Label
		}
	}
	return t.DefaultScore, t.DefaultLabel
}

// MaxScore is the highest score the table can award.
func (t BandTable) MaxScore() float64 {
	best := t.DefaultScore
	for _, b := range t.Bands {
		best = max(best, b.Score)
	}
	return best
}
