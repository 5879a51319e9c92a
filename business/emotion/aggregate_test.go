package emotion_test

import (
	"reflect"
	"testing"

	"github.com/hopelabs/goFerWatch/business/emotion"
)

func recAt(ts float64, label string, score float64) emotion.Record {
	scores := make(emotion.Scores, len(emotion.Labels))
	for _, l := range emotion.Labels {
		scores[l] = 0
	}
	scores[label] = score

	return emotion.Record{
		Timestamp:  ts,
		Dominant:   label,
		Confidence: score,
		Scores:     scores,
	}
}

func TestDominantInRangeEmpty(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()

	sum := emotion.DominantInRange(nil, 0, 10, policy)
	if sum.Dominant != emotion.Unknown || sum.Confidence != 0 {
		t.Fatalf("got %s/%v, want unknown/0", sum.Dominant, sum.Confidence)
	}
	if len(sum.EmotionScores) != 0 || len(sum.WeightedScores) != 0 {
		t.Fatal("empty window must return empty score maps")
	}

	// Records outside the window behave the same as no records.
	records := []emotion.Record{recAt(100, "sad", 1.0)}
	sum = emotion.DominantInRange(records, 0, 10, policy)
	if sum.Dominant != emotion.Unknown {
		t.Fatalf("got %s, want unknown", sum.Dominant)
	}
}

func TestDominantInRangeInclusiveBounds(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()
	records := []emotion.Record{
		recAt(0, "sad", 1.0),
		recAt(5, "sad", 1.0),
		recAt(10, "sad", 1.0),
	}

	sum := emotion.DominantInRange(records, 0, 10, policy)
	if sum.FrameCount != 3 {
		t.Fatalf("got %d frames, want 3 (both bounds inclusive)", sum.FrameCount)
	}
	if sum.Dominant != "sad" {
		t.Fatalf("got %s, want sad", sum.Dominant)
	}
	// Mean sad score 1.0 boosted by the aggregate table's 2.0.
	if sum.Confidence != 2.0 {
		t.Fatalf("got confidence %v, want 2.0", sum.Confidence)
	}
	if sum.Duration != 10 {
		t.Fatalf("got duration %v, want 10", sum.Duration)
	}
}

func TestDominantInRangeIdempotent(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()
	records := []emotion.Record{
		recAt(1, "happy", 0.5),
		recAt(2, "sad", 0.25),
		recAt(3, "neutral", 0.9),
	}

	first := emotion.DominantInRange(records, 0, 5, policy)
	second := emotion.DominantInRange(records, 0, 5, policy)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestPeriodicSummary(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()
	records := []emotion.Record{
		recAt(0, "sad", 1.0),
		recAt(0.5, "sad", 1.0),
		recAt(1.0, "sad", 1.0),
	}

	buckets := emotion.PeriodicSummary(records, 1, policy)

	// Half-open buckets: [0,1) holds t=0 and t=0.5, [1,2) holds t=1.0.
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].FrameCount != 2 || buckets[1].FrameCount != 1 {
		t.Fatalf("got frame counts %d/%d, want 2/1", buckets[0].FrameCount, buckets[1].FrameCount)
	}
	for i, b := range buckets {
		if b.Dominant != "sad" {
			t.Fatalf("bucket %d: got %s, want sad", i, b.Dominant)
		}
	}
	if buckets[0].Start != 0 || buckets[0].End != 1 || buckets[1].Start != 1 || buckets[1].End != 2 {
		t.Fatalf("unexpected bucket bounds: %+v", buckets)
	}
}

func TestPeriodicSummarySkipsEmptyBuckets(t *testing.T) {
	policy := emotion.DefaultBiasPolicy()
	records := []emotion.Record{
		recAt(0, "happy", 1.0),
		recAt(10, "sad", 1.0),
	}

	buckets := emotion.PeriodicSummary(records, 1, policy)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2 (gaps skipped)", len(buckets))
	}
	if buckets[0].Dominant != "happy" || buckets[1].Dominant != "sad" {
		t.Fatalf("unexpected bucket emotions: %+v", buckets)
	}
}

func TestPeriodicSummaryNoData(t *testing.T) {
	if got := emotion.PeriodicSummary(nil, 1, emotion.DefaultBiasPolicy()); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
