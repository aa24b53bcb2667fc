package cadence

// SentimentLevel is the recorded reaction to a completed occurrence
type SentimentLevel string

// Sentiment levels, worst to best
const (
	SentimentVeryPoor SentimentLevel = "VERY_POOR"
	SentimentPoor     SentimentLevel = "POOR"
	SentimentNeutral  SentimentLevel = "NEUTRAL"
	SentimentWell     SentimentLevel = "WELL"
	SentimentVeryWell SentimentLevel = "VERY_WELL"
)

// Weight maps a level onto the fixed numeric scale -2..2
// unknown levels weigh 0 and are rejected at the boundary before reaching the engine
func (l SentimentLevel) Weight() float64 {
	switch l {
	case SentimentVeryPoor:
		return -2
	case SentimentPoor:
		return -1
	case SentimentWell:
		return 1
	case SentimentVeryWell:
		return 2
	default:
		return 0
	}
}

// Valid reports whether l is a known level
func (l SentimentLevel) Valid() bool {
	switch l {
	case SentimentVeryPoor, SentimentPoor, SentimentNeutral, SentimentWell, SentimentVeryWell:
		return true
	}
	return false
}

// Levels lists every level worst to best
func Levels() []SentimentLevel {
	return []SentimentLevel{SentimentVeryPoor, SentimentPoor, SentimentNeutral, SentimentWell, SentimentVeryWell}
}

// Level returns a pointer to l, handy when building history literals
func Level(l SentimentLevel) *SentimentLevel { return &l }
