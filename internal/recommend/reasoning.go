// Moodscape - Mood-Aware Music Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodscape

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/moodscape/internal/mood"
)

// moodFragments complete the reasoning sentence "...as it's perfect for".
var moodFragments = map[mood.Mood]string{
	mood.Tired:     "relaxing and unwinding after a long day.",
	mood.Stressed:  "calming your mind and reducing anxiety.",
	mood.Energetic: "keeping your energy levels high and staying motivated.",
	mood.Focused:   "maintaining concentration and productivity.",
	mood.Relaxed:   "maintaining a peaceful and calm state.",
	mood.Anxious:   "soothing your nerves and promoting relaxation.",
}

// buildReasoning produces the human-readable explanation for a response.
// Confidence is rendered as a whole percentage.
func buildReasoning(pred mood.Prediction, ranked []RankedCategory) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on your input, we detected a %s mood (confidence: %.0f%%). ",
		pred.PrimaryMood, pred.Confidence*100)

	if len(ranked) > 0 {
		fragment, ok := moodFragments[pred.PrimaryMood]
		if !ok {
			fragment = "enhancing your current mood."
		}
		fmt.Fprintf(&b, "We recommend %s as it's perfect for %s", ranked[0].Name, fragment)
	}

	return b.String()
}
