package ledger_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/business/ledger"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emotions_data.csv")

	records := []emotion.Record{recordAt(1), recordAt(2)}
	if err := ledger.WriteSnapshot(path, records); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	header := strings.Join(rows[0], ",")
	want := "timestamp,datetime,dominant_emotion,confidence,angry_score,disgust_score,fear_score,happy_score,sad_score,surprise_score,neutral_score"
	if header != want {
		t.Fatalf("header mismatch:\ngot  %s\nwant %s", header, want)
	}

	if rows[1][0] != "1" || rows[1][2] != "sad" || rows[1][3] != "1" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	// sad_score column carries the score, the rest are zero.
	if rows[1][8] != "1" || rows[1][4] != "0" {
		t.Fatalf("unexpected score columns: %v", rows[1])
	}

	// A later snapshot overwrites, never appends.
	if err := ledger.WriteSnapshot(path, records[:1]); err != nil {
		t.Fatal(err)
	}
	if rows := readCSV(t, path); len(rows) != 2 {
		t.Fatalf("got %d rows after rewrite, want header + 1", len(rows))
	}
}

func TestWriteArchive(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	path, err := ledger.WriteArchive(dir, []emotion.Record{recordAt(5)}, now)
	if err != nil {
		t.Fatal(err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "archive_20250601_123000_") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("unexpected archive name %q", name)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 || rows[1][0] != "5" {
		t.Fatalf("unexpected archive contents: %v", rows)
	}

	// A second eviction at the same wall second still gets its own file.
	path2, err := ledger.WriteArchive(dir, []emotion.Record{recordAt(6)}, now)
	if err != nil {
		t.Fatal(err)
	}
	if path2 == path {
		t.Fatal("archive files must be unique per eviction event")
	}
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emotions_summary.csv")

	buckets := []emotion.Bucket{
		{Start: 0, End: 1, Datetime: "2025-01-01 00:00:00", Dominant: "sad", Confidence: 2, FrameCount: 3},
	}
	if err := ledger.WriteSummary(path, buckets); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "start_time,end_time,datetime,dominant_emotion,confidence,frame_count" {
		t.Fatalf("header mismatch: %s", got)
	}
	if rows[1][3] != "sad" || rows[1][5] != "3" {
		t.Fatalf("unexpected summary row: %v", rows[1])
	}
}

func TestWriteSegments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice_segments.csv")

	segments := []emotion.VoiceSegment{
		{Start: 10, End: 15.5, Duration: 5.5, Dominant: "happy", Confidence: 1.2},
	}
	if err := ledger.WriteSegments(path, segments); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != "start_time,end_time,duration,dominant_emotion,confidence" {
		t.Fatalf("header mismatch: %s", got)
	}
	if rows[1][1] != "15.5" || rows[1][3] != "happy" {
		t.Fatalf("unexpected segment row: %v", rows[1])
	}
}
