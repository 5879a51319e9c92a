// Package emotion holds the classifier-output transforms: the per-frame bias
// boost, windowed aggregation over the ledger, periodic summaries, and the
// recording-session analysis. Everything operates on plain values so the
// worker's ledger operation stays the only writer of shared state.
package emotion

import (
	"time"
)

// Labels is the closed emotion label set in canonical order. Argmax ties
// resolve to the first maximum encountered in this order.
var Labels = []string{"angry", "disgust", "fear", "happy", "sad", "surprise", "neutral"}

const (
	Neutral = "neutral"

	// Unknown is the sentinel dominant emotion for an empty window.
	Unknown = "unknown"
)

const (
	recordTimeLayout = "2006-01-02 15:04:05.000"
	bucketTimeLayout = "2006-01-02 15:04:05"
)

type Scores map[string]float64

// Dominant returns the argmax label and its score. Missing labels are
// skipped; an empty mapping yields the Unknown sentinel.
func Dominant(s Scores) (string, float64) {
	label := ""
	var best float64

	for _, l := range Labels {
		v, ok := s[l]
		if !ok {
			continue
		}
		if label == "" || v > best {
			label, best = l, v
		}
	}

	if label == "" {
		return Unknown, 0
	}
	return label, best
}

// BiasPolicy is the hand-tuned correction against the classifier's neutral
// bias. The frame and aggregate tables intentionally differ (the per-frame
// pass damps neutral to 0.75, the aggregate pass leaves it at 1.0), and the
// aggregate boost is applied on top of already-boosted per-frame scores. Both
// are preserved from the tuned production values; do not unify them without
// product sign-off.
type BiasPolicy struct {
	FrameBoost         map[string]float64
	AggregateBoost     map[string]float64
	NeutralWeight      float64
	EmotionWeight      float64
	RecommendThreshold float64
}

func DefaultBiasPolicy() BiasPolicy {
	return BiasPolicy{
		FrameBoost: map[string]float64{
			"sad":      2.0,
			"happy":    2.0,
			"surprise": 1.5,
			"angry":    1.5,
			"disgust":  1.5,
			"fear":     1.5,
			"neutral":  0.75,
		},
		AggregateBoost: map[string]float64{
			"sad":      2.0,
			"happy":    2.0,
			"surprise": 1.5,
			"angry":    1.5,
			"disgust":  1.5,
			"fear":     1.5,
			"neutral":  1.0,
		},
		NeutralWeight:      0.3,
		EmotionWeight:      1.5,
		RecommendThreshold: 0.6,
	}
}

// PolicyFromTables builds a policy from profile values, falling back to the
// defaults for any empty table or zero weight.
func PolicyFromTables(frame, aggregate map[string]float64, neutralWeight, emotionWeight, recommendThreshold float64) BiasPolicy {
	policy := DefaultBiasPolicy()

	if len(frame) > 0 {
		policy.FrameBoost = frame
	}
	if len(aggregate) > 0 {
		policy.AggregateBoost = aggregate
	}
	if neutralWeight > 0 {
		policy.NeutralWeight = neutralWeight
	}
	if emotionWeight > 0 {
		policy.EmotionWeight = emotionWeight
	}
	if recommendThreshold > 0 {
		policy.RecommendThreshold = recommendThreshold
	}

	return policy
}

// BoostFrame applies the per-frame table to a raw classifier mapping. The
// result always carries all labels; labels absent from the input score zero.
func (p BiasPolicy) BoostFrame(raw Scores) Scores {
	return boost(raw, p.FrameBoost)
}

// BoostAggregate applies the aggregate table to averaged window scores.
func (p BiasPolicy) BoostAggregate(avg Scores) Scores {
	return boost(avg, p.AggregateBoost)
}

func (p BiasPolicy) sessionWeight(label string) float64 {
	if label == Neutral {
		return p.NeutralWeight
	}
	return p.EmotionWeight
}

func boost(s Scores, table map[string]float64) Scores {
	out := make(Scores, len(Labels))
	for _, label := range Labels {
		factor, ok := table[label]
		if !ok {
			factor = 1.0
		}
		out[label] = s[label] * factor
	}
	return out
}

// Record is one row of the emotion ledger. Dominant always equals the argmax
// of Scores as of creation time.
type Record struct {
	Timestamp  float64 `json:"timestamp"`
	Datetime   string  `json:"datetime"`
	Dominant   string  `json:"dominant_emotion"`
	Confidence float64 `json:"confidence"`
	Scores     Scores  `json:"scores"`
}

// NewRecord boosts a raw classifier mapping and stamps it with now.
func NewRecord(now time.Time, raw Scores, policy BiasPolicy) Record {
	boosted := policy.BoostFrame(raw)
	dominant, confidence := Dominant(boosted)

	return Record{
		Timestamp:  UnixSeconds(now),
		Datetime:   now.Format(recordTimeLayout),
		Dominant:   dominant,
		Confidence: confidence,
		Scores:     boosted,
	}
}

// UnixSeconds renders a time as float seconds since epoch, the ledger's
// ordering key.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

func formatUnix(ts float64, layout string) string {
	return time.Unix(0, int64(ts*1e9)).Format(layout)
}
