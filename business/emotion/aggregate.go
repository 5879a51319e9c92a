package emotion

// RangeSummary is the weighted dominant emotion over a time range of ledger
// records. EmotionScores holds the per-label means of the (already boosted)
// frame scores; WeightedScores holds those means after the aggregate boost
// pass.
type RangeSummary struct {
	Dominant       string  `json:"dominant_emotion"`
	Confidence     float64 `json:"confidence"`
	EmotionScores  Scores  `json:"emotion_scores"`
	WeightedScores Scores  `json:"weighted_scores"`
	FrameCount     int     `json:"frame_count"`
	Duration       float64 `json:"duration_seconds"`
	Start          float64 `json:"start_time"`
	End            float64 `json:"end_time"`
}

// Bucket is one non-empty period of a periodic summary.
type Bucket struct {
	Start      float64 `json:"start_time"`
	End        float64 `json:"end_time"`
	Datetime   string  `json:"datetime"`
	Dominant   string  `json:"dominant_emotion"`
	Confidence float64 `json:"confidence"`
	FrameCount int     `json:"frame_count"`
}

// VoiceSegment is a user-marked interval with its computed dominant emotion.
type VoiceSegment struct {
	Start      float64 `json:"start_time"`
	End        float64 `json:"end_time"`
	Duration   float64 `json:"duration"`
	Dominant   string  `json:"dominant_emotion"`
	Confidence float64 `json:"confidence"`
}

// DominantInRange aggregates records with start <= timestamp <= end. An empty
// window yields the Unknown sentinel with zero confidence.
func DominantInRange(records []Record, start, end float64, policy BiasPolicy) RangeSummary {
	var window []Record
	for _, r := range records {
		if r.Timestamp >= start && r.Timestamp <= end {
			window = append(window, r)
		}
	}
	return aggregateWindow(window, start, end, policy)
}

// PeriodicSummary walks the full timestamp range of records in half-open
// [t, t+period) buckets, skipping empty ones. Records must be in timestamp
// order, which the ledger guarantees.
func PeriodicSummary(records []Record, periodSeconds float64, policy BiasPolicy) []Bucket {
	if len(records) == 0 || periodSeconds <= 0 {
		return nil
	}

	minTime := records[0].Timestamp
	maxTime := records[len(records)-1].Timestamp

	var buckets []Bucket
	next := 0

	for i := 0; ; i++ {
		start := minTime + float64(i)*periodSeconds
		if start > maxTime {
			break
		}
		end := start + periodSeconds

		first := next
		for next < len(records) && records[next].Timestamp < end {
			next++
		}
		if next == first {
			continue
		}

		sum := aggregateWindow(records[first:next], start, end, policy)
		buckets = append(buckets, Bucket{
			Start:      start,
			End:        end,
			Datetime:   formatUnix(start, bucketTimeLayout),
			Dominant:   sum.Dominant,
			Confidence: sum.Confidence,
			FrameCount: sum.FrameCount,
		})
	}

	return buckets
}

func aggregateWindow(window []Record, start, end float64, policy BiasPolicy) RangeSummary {
	if len(window) == 0 {
		return RangeSummary{
			Dominant:       Unknown,
			EmotionScores:  Scores{},
			WeightedScores: Scores{},
			Duration:       end - start,
			Start:          start,
			End:            end,
		}
	}

	avg := make(Scores, len(Labels))
	for _, label := range Labels {
		var total float64
		for _, r := range window {
			total += r.Scores[label]
		}
		avg[label] = total / float64(len(window))
	}

	weighted := policy.BoostAggregate(avg)
	dominant, confidence := Dominant(weighted)

	return RangeSummary{
		Dominant:       dominant,
		Confidence:     confidence,
		EmotionScores:  avg,
		WeightedScores: weighted,
		FrameCount:     len(window),
		Duration:       end - start,
		Start:          start,
		End:            end,
	}
}
