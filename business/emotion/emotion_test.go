package emotion_test

import (
	"testing"
	"time"

	"github.com/hopelabs/goFerWatch/business/emotion"
)

func TestBoostFrame(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()

	raw := emotion.Scores{"happy": 0.4, "neutral": 0.5, "sad": 0.1}
	boosted := policy.BoostFrame(raw)

	want := map[string]float64{
		"happy":   0.8,
		"neutral": 0.375,
		"sad":     0.2,
	}
	for label, score := range want {
		if boosted[label] != score {
			t.Errorf("%s: got %v, want %v", label, boosted[label], score)
		}
	}

	// Labels absent from the raw mapping still appear, scored zero.
	for _, label := range []string{"angry", "disgust", "fear", "surprise"} {
		if got, ok := boosted[label]; !ok || got != 0 {
			t.Errorf("%s: got %v (present %v), want 0", label, got, ok)
		}
	}

	dominant, confidence := emotion.Dominant(boosted)
	if dominant != "happy" || confidence != 0.8 {
		t.Fatalf("got dominant %s/%v, want happy/0.8", dominant, confidence)
	}
}

func TestDominantTieBreak(t *testing.T) {
	// Equal maxima resolve to the first label in canonical order.
	scores := emotion.Scores{"happy": 0.5, "angry": 0.5, "neutral": 0.1}
	dominant, _ := emotion.Dominant(scores)
	if dominant != "angry" {
		t.Fatalf("got %s, want angry", dominant)
	}
}

func TestDominantEmpty(t *testing.T) {
	dominant, confidence := emotion.Dominant(emotion.Scores{})
	if dominant != emotion.Unknown || confidence != 0 {
		t.Fatalf("got %s/%v, want unknown/0", dominant, confidence)
	}
}

func TestNewRecord(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()
	now := time.Date(2025, 3, 14, 15, 9, 26, 500e6, time.UTC)

	rec := emotion.NewRecord(now, emotion.Scores{"happy": 0.4, "neutral": 0.5, "sad": 0.1}, policy)

	if rec.Dominant != "happy" || rec.Confidence != 0.8 {
		t.Fatalf("got %s/%v, want happy/0.8", rec.Dominant, rec.Confidence)
	}
	if len(rec.Scores) != len(emotion.Labels) {
		t.Fatalf("got %d score labels, want %d", len(rec.Scores), len(emotion.Labels))
	}

	// The record invariant: dominant equals the argmax of its own scores.
	dominant, confidence := emotion.Dominant(rec.Scores)
	if dominant != rec.Dominant || confidence != rec.Confidence {
		t.Fatalf("argmax %s/%v does not match record %s/%v", dominant, confidence, rec.Dominant, rec.Confidence)
	}

	if rec.Timestamp != emotion.UnixSeconds(now) {
		t.Fatalf("got timestamp %v, want %v", rec.Timestamp, emotion.UnixSeconds(now))
	}
}

func TestPolicyFromTables(t *testing.T) {
	policy := emotion.PolicyFromTables(nil, nil, 0, 0, 0)
	def := emotion.DefaultBiasPolicy()

	if policy.FrameBoost["neutral"] != def.FrameBoost["neutral"] {
		t.Fatalf("empty tables should fall back to defaults")
	}
	if policy.RecommendThreshold != def.RecommendThreshold {
		t.Fatalf("zero threshold should fall back to default")
	}

	custom := emotion.PolicyFromTables(map[string]float64{"neutral": 1.0}, nil, 0.5, 2.0, 0.9)
	if custom.FrameBoost["neutral"] != 1.0 || custom.NeutralWeight != 0.5 || custom.RecommendThreshold != 0.9 {
		t.Fatalf("custom values not applied: %+v", custom)
	}
}
