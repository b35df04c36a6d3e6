package gradscout

// Weights are the contributions of each signal category to a score.
type Weights struct {
	// FundingHit is added once per distinct funding keyword. Uncapped.
	FundingHit float64

	// NoGRE is added once when any no-GRE phrase is present.
	NoGRE float64

	// NoIELTS is added once when any no-IELTS phrase is present.
	NoIELTS float64

	// Deadline is added once when at least one deadline was found.
	Deadline float64
}

// DefaultWeights are the weights used by Score.
var DefaultWeights = Weights{
	FundingHit: 0.5,
	NoGRE:      0.5,
	NoIELTS:    0.3,
	Deadline:   0.4,
}

// DefaultMinScore is the default threshold below which candidates are dropped.
const DefaultMinScore = 2.5

// Score returns the relevance score of the signals using DefaultWeights.
func Score(s SignalSet) float64 {
	return DefaultWeights.Score(s)
}

// Score returns the weighted sum of the signals.
func (w Weights) Score(s SignalSet) float64 {
	score := w.FundingHit * float64(len(s.Funding))
	if len(s.NoGRE) > 0 {
		score += w.NoGRE
	}
	if len(s.NoIELTS) > 0 {
		score += w.NoIELTS
	}
	if len(s.Deadlines) > 0 {
		score += w.Deadline
	}
	return score
}
