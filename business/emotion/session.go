package emotion

import "errors"

var ErrNoEvents = errors.New("no emotions recorded")

// SessionEvent is one raw per-frame event buffered during a recording
// session. Offset is seconds since the session started.
type SessionEvent struct {
	Offset     float64 `json:"offset"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Scores     Scores  `json:"all_emotions"`
}

type SessionAnalysis struct {
	TotalFrames     int
	Counts          map[string]int
	Durations       map[string]float64
	Weighted        map[string]float64
	MostFrequent    string
	LongestDuration string
	MostSignificant string
	Recommended     string
	Reason          string
}

// AnalyzeSession runs the post-hoc analysis over a consumed recording
// session. Durations assume uniform inter-frame spacing across wallSeconds.
// The recommendation prefers the most significant non-neutral emotion when
// its weighted score clears RecommendThreshold of neutral's, otherwise it
// falls back to the longest-held emotion.
func AnalyzeSession(events []SessionEvent, wallSeconds float64, policy BiasPolicy) (SessionAnalysis, error) {
	if len(events) == 0 {
		return SessionAnalysis{}, ErrNoEvents
	}

	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Emotion]++
	}

	timePerEntry := wallSeconds / float64(len(events))
	durations := make(map[string]float64, len(counts))
	for label, count := range counts {
		durations[label] = float64(count) * timePerEntry
	}

	weighted := make(map[string]float64)
	for _, ev := range events {
		weighted[ev.Emotion] += policy.sessionWeight(ev.Emotion) * ev.Confidence
	}

	mostFrequent := argmaxCount(counts)
	longestDuration := argmaxFloat(durations)
	mostSignificant := argmaxFloat(weighted)

	analysis := SessionAnalysis{
		TotalFrames:     len(events),
		Counts:          counts,
		Durations:       durations,
		Weighted:        weighted,
		MostFrequent:    mostFrequent,
		LongestDuration: longestDuration,
		MostSignificant: mostSignificant,
	}

	if mostSignificant != Neutral && weighted[mostSignificant] > weighted[Neutral]*policy.RecommendThreshold {
		analysis.Recommended = mostSignificant
		analysis.Reason = "accounts for brief but meaningful emotional responses"
	} else {
		analysis.Recommended = longestDuration
		analysis.Reason = "represents the dominant emotional state during recording"
	}

	return analysis, nil
}

func argmaxCount(m map[string]int) string {
	label := ""
	var best int
	for _, l := range Labels {
		v, ok := m[l]
		if !ok {
			continue
		}
		if label == "" || v > best {
			label, best = l, v
		}
	}
	return label
}

func argmaxFloat(m map[string]float64) string {
	label := ""
	var best float64
	for _, l := range Labels {
		v, ok := m[l]
		if !ok {
			continue
		}
		if label == "" || v > best {
			label, best = l, v
		}
	}
	return label
}
