package emotion

import (
	"fmt"
	"sort"
	"strings"
)

// ContextReport renders a range summary as prompt-ready text for the agent.
// This string is the engine's consumer-facing contract: the companion agent
// injects it verbatim into the model prompt.
func ContextReport(sum RangeSummary, windowSeconds float64) string {
	if sum.Dominant == Unknown || sum.FrameCount == 0 {
		return fmt.Sprintf("No facial emotion data for the last %.0f seconds. The camera feed may be down; respond without emotional context.", windowSeconds)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Facial emotion over the last %.0f seconds: %s (confidence %.2f, %d frames analyzed).\n",
		windowSeconds, sum.Dominant, sum.Confidence, sum.FrameCount)

	type labelScore struct {
		label string
		score float64
	}
	distribution := make([]labelScore, 0, len(Labels))
	for _, label := range Labels {
		distribution = append(distribution, labelScore{label, sum.WeightedScores[label]})
	}
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].score > distribution[j].score
	})

	b.WriteString("Weighted distribution: ")
	for i, ls := range distribution {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %.2f", ls.label, ls.score)
	}
	b.WriteString(".")

	return b.String()
}
