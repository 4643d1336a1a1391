package dashboard

type ScoreLevel string

const (
	LevelHigh   ScoreLevel = "high"
	LevelMedium ScoreLevel = "medium"
	LevelLow    ScoreLevel = "low"
)

const (
	highScoreThreshold   = 80.0
	mediumScoreThreshold = 60.0
)

// ScoreBucket is everything a view needs to colour a match score.
type ScoreBucket struct {
	Level     ScoreLevel
	Label     string
	TextColor string
	Gradient  string
	Badge     string
}

var (
	highBucket = ScoreBucket{
		Level:     LevelHigh,
		Label:     "Strong match",
		TextColor: "text-green-600",
		Gradient:  "from-green-500 to-emerald-500",
		Badge:     "default",
	}
	mediumBucket = ScoreBucket{
		Level:     LevelMedium,
		Label:     "Partial match",
		TextColor: "text-amber-600",
		Gradient:  "from-amber-500 to-orange-500",
		Badge:     "secondary",
	}
	lowBucket = ScoreBucket{
		Level:     LevelLow,
		Label:     "Weak match",
		TextColor: "text-red-600",
		Gradient:  "from-red-500 to-rose-500",
		Badge:     "destructive",
	}
)

func BucketFor(score float64) ScoreBucket {
	switch {
	case score >= highScoreThreshold:
		return highBucket
	case score >= mediumScoreThreshold:
		return mediumBucket
	default:
		return lowBucket
	}
}
