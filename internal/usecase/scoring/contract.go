package scoring

import "time"

// Recorder records scoring outcomes.
type Recorder interface {
	ObserveScore(outcome string, score float64, duration time.Duration)
}
