package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hopelabs/goFerWatch/business/emotion"
)

const archiveTimeLayout = "20060102_150405"

var snapshotHeader = []string{
	"timestamp", "datetime", "dominant_emotion", "confidence",
	"angry_score", "disgust_score", "fear_score", "happy_score",
	"sad_score", "surprise_score", "neutral_score",
}

var summaryHeader = []string{
	"start_time", "end_time", "datetime", "dominant_emotion", "confidence", "frame_count",
}

var segmentsHeader = []string{
	"start_time", "end_time", "duration", "dominant_emotion", "confidence",
}

// WriteSnapshot rewrites the full ledger snapshot at path. Non-destructive
// toward the in-memory ledger; safe to call at any time.
func WriteSnapshot(path string, records []emotion.Record) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordRow(r))
	}
	return writeCSV(path, snapshotHeader, rows)
}

// WriteArchive flushes evicted records to a new timestamped archive file in
// dir and returns its path. One file per eviction event; archives are cold
// storage and never read back by the engine.
func WriteArchive(dir string, records []emotion.Record, now time.Time) (string, error) {
	name := fmt.Sprintf("archive_%s_%s.csv", now.Format(archiveTimeLayout), uuid.New().String()[:8])
	path := filepath.Join(dir, name)

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, recordRow(r))
	}

	if err := writeCSV(path, snapshotHeader, rows); err != nil {
		return "", err
	}
	return path, nil
}

func WriteSummary(path string, buckets []emotion.Bucket) error {
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			formatFloat(b.Start),
			formatFloat(b.End),
			b.Datetime,
			b.Dominant,
			formatFloat(b.Confidence),
			strconv.Itoa(b.FrameCount),
		})
	}
	return writeCSV(path, summaryHeader, rows)
}

// WriteSegments rewrites the whole voice segment list; the list only grows
// over the process lifetime.
func WriteSegments(path string, segments []emotion.VoiceSegment) error {
	rows := make([][]string, 0, len(segments))
	for _, s := range segments {
		rows = append(rows, []string{
			formatFloat(s.Start),
			formatFloat(s.End),
			formatFloat(s.Duration),
			s.Dominant,
			formatFloat(s.Confidence),
		})
	}
	return writeCSV(path, segmentsHeader, rows)
}

func recordRow(r emotion.Record) []string {
	row := make([]string, 0, len(snapshotHeader))
	row = append(row,
		formatFloat(r.Timestamp),
		r.Datetime,
		r.Dominant,
		formatFloat(r.Confidence),
	)
	for _, label := range emotion.Labels {
		row = append(row, formatFloat(r.Scores[label]))
	}
	return row
}

func writeCSV(path string, header []string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Sync()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
