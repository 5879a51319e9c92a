package worker

import (
	"time"

	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/business/ledger"
	"github.com/hopelabs/goFerWatch/foundation/pubsub"
	"github.com/hopelabs/goFerWatch/foundation/state"
)

// ledgerOperation is the only writer of the ledger. It rate-limits appends,
// runs the save and manage timers, and owns the voice marker and the durable
// files.
func (w *Worker) ledgerOperation() {
	w.logger.Infow("worker: ledgerOperation: G started")
	defer w.logger.Infow("worker: ledgerOperation: G completed")

	emotionSub := pubsub.NewSubscriber(100)
	w.broker.Subscribe(emotionTopic, emotionSub)
	defer w.broker.UnSubscribe(emotionTopic, emotionSub)
	emotionCh := emotionSub.GetChannel()

	cmdSub := pubsub.NewSubscriber(10)
	w.broker.Subscribe(commandTopic, cmdSub)
	defer w.broker.UnSubscribe(commandTopic, cmdSub)
	cmdCh := cmdSub.GetChannel()

	saveTicker := time.NewTicker(w.config.SaveInterval)
	defer saveTicker.Stop()

	manageTicker := time.NewTicker(w.config.ManageInterval)
	defer manageTicker.Stop()

	var lastLog time.Time
	var voiceStart float64
	var segments []emotion.VoiceSegment

	// Best-effort flush of final state, also on shutdown after a failure.
	defer w.finalFlush()

	w.logger.Infow("worker: ledgerOperation: G listening")
	for {
		select {
		case data := <-emotionCh:
			rec, ok := data.(emotion.Record)
			if !ok {
				continue
			}
			if time.Since(lastLog) < w.config.LoggingInterval {
				continue
			}
			if err := w.ledger.Append(rec); err != nil {
				w.logger.Errorw("worker: ledgerOperation: append", "ERROR", err)
				continue
			}
			lastLog = time.Now()

		case <-saveTicker.C:
			if w.ledger.Len() == 0 {
				continue
			}
			w.saveSnapshot()

		case <-manageTicker.C:
			w.manageLedger(&voiceStart, &segments)

		case data := <-cmdCh:
			cmd, ok := data.(Command)
			if !ok {
				continue
			}
			switch cmd {
			case CommandClear:
				w.ledger.Clear()
				w.logger.Infow("worker: ledgerOperation: ledger cleared")

			case CommandSummary:
				w.writeSummary()

			case CommandVoiceMarker:
				w.toggleVoiceMarker(&voiceStart, &segments)
			}

		case <-w.shut:
			w.logger.Infow("worker: ledgerOperation: received shut signal")
			return
		}
	}
}

// =====================================================================================================================

func (w *Worker) saveSnapshot() {
	records := w.ledger.Snapshot()
	if err := ledger.WriteSnapshot(w.config.SnapshotPath, records); err != nil {
		// In-memory state is untouched; the next tick retries.
		w.logger.Errorw("worker: ledgerOperation: save snapshot", "ERROR", err)
		return
	}
	w.logger.Infow("worker: ledgerOperation: snapshot saved", "path", w.config.SnapshotPath, "rows", len(records))
}

func (w *Worker) writeSummary() {
	buckets := emotion.PeriodicSummary(w.ledger.Snapshot(), w.config.SummaryPeriod, w.policy)
	if len(buckets) == 0 {
		w.logger.Infow("worker: ledgerOperation: no data to summarize")
		return
	}

	if err := ledger.WriteSummary(w.config.SummaryPath, buckets); err != nil {
		w.logger.Errorw("worker: ledgerOperation: write summary", "ERROR", err)
	} else {
		w.logger.Infow("worker: ledgerOperation: summary saved", "path", w.config.SummaryPath, "buckets", len(buckets))
	}

	// Fan the newest bucket out to the agent channel; drop when the
	// publisher is backed up.
	select {
	case w.bucketCh <- buckets[len(buckets)-1]:
	default:
	}
}

func (w *Worker) manageLedger(voiceStart *float64, segments *[]emotion.VoiceSegment) {
	if w.ledger.Len() == 0 {
		return
	}

	w.logger.Infow("worker: ledgerOperation: managing ledger", "rows", w.ledger.Len())

	w.writeSummary()

	// Close out an in-progress voice marker into the segment list without
	// stopping the marker.
	if w.state.Get(state.VoiceMarker) {
		now := emotion.UnixSeconds(time.Now())
		w.storeVoiceSegment(*voiceStart, now, segments)
		w.logger.Infow("worker: ledgerOperation: stored in-progress voice segment")
	}

	w.saveSnapshot()

	now := time.Now()
	evicted, trimmed := w.ledger.SizeManage(emotion.UnixSeconds(now), w.config.MaxRows, w.config.BufferSeconds)

	if len(evicted) > 0 {
		path, err := ledger.WriteArchive(w.config.ArchiveDirectory, evicted, now)
		if err != nil {
			w.logger.Errorw("worker: ledgerOperation: archive", "ERROR", err)
		} else {
			w.logger.Infow("worker: ledgerOperation: archived older records", "count", len(evicted), "path", path)
		}
	}
	if trimmed > 0 {
		w.logger.Infow("worker: ledgerOperation: trimmed recent data", "rows", trimmed, "maxRows", w.config.MaxRows)
	}
}

func (w *Worker) toggleVoiceMarker(voiceStart *float64, segments *[]emotion.VoiceSegment) {
	now := emotion.UnixSeconds(time.Now())

	if !w.state.Get(state.VoiceMarker) {
		w.state.Set(state.VoiceMarker, true)
		*voiceStart = now
		w.logger.Infow("worker: ledgerOperation: voice marker started", "start", now)
		return
	}

	w.state.Set(state.VoiceMarker, false)
	seg := w.storeVoiceSegment(*voiceStart, now, segments)
	w.logger.Infow("worker: ledgerOperation: voice segment analyzed",
		"emotion", seg.Dominant,
		"confidence", seg.Confidence,
		"duration", seg.Duration,
	)
}

func (w *Worker) storeVoiceSegment(start, end float64, segments *[]emotion.VoiceSegment) emotion.VoiceSegment {
	sum := emotion.DominantInRange(w.ledger.Snapshot(), start, end, w.policy)
	seg := emotion.VoiceSegment{
		Start:      start,
		End:        end,
		Duration:   end - start,
		Dominant:   sum.Dominant,
		Confidence: sum.Confidence,
	}
	*segments = append(*segments, seg)

	if err := ledger.WriteSegments(w.config.SegmentsPath, *segments); err != nil {
		w.logger.Errorw("worker: ledgerOperation: write segments", "ERROR", err)
	}

	select {
	case w.segmentCh <- seg:
	default:
	}

	return seg
}

func (w *Worker) finalFlush() {
	if w.ledger.Len() == 0 {
		return
	}
	w.saveSnapshot()
	w.writeSummary()
	w.logger.Infow("worker: ledgerOperation: final state flushed")
}
