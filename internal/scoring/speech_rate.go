package scoring

import (
	"fmt"

	"github.com/jonathan/transcript-scorer/internal/rubric"
)

// SpeechRateResult is the outcome of the words-per-minute check.
type SpeechRateResult struct {
	Score       float64
	WPM         float64
	DurationSec float64
	Estimated   bool
	Label       string
	Feedback    string
}

// ScoreSpeechRate maps words per minute onto the speech-rate bands.
//
// A missing or non-positive duration is estimated from the word count at the
// rubric's assumed words per second. Zero words yields 0 WPM.
func ScoreSpeechRate(words int, durationSec *float64, table rubric.SpeechRate) SpeechRateResult {
	res := SpeechRateResult{}
	if durationSec != nil && *durationSec > 0 {
		res.DurationSec = *durationSec
	} else {
		res.Estimated = true
		res.DurationSec = float64(words) / table.AssumedWordsPerSecond
	}
	if words > 0 && res.DurationSec > 0 {
		res.WPM = float64(words) / res.DurationSec * 60
	}

	res.Score, res.Label = table.Bands.Lookup(res.WPM)
	if res.Label == "" {
		res.Feedback = fmt.Sprintf("Speech rate: %.1f WPM", res.WPM)
	} else {
		res.Feedback = fmt.Sprintf("%s speech rate: %.1f WPM", res.Label, res.WPM)
	}
	return res
}
