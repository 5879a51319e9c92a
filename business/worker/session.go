package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/foundation/pubsub"
	"github.com/hopelabs/goFerWatch/foundation/state"
)

// recordingSession buffers raw per-frame events between the start command and
// auto or manual stop. Consumed once by the analysis, then discarded.
type recordingSession struct {
	id     string
	start  time.Time
	events []emotion.SessionEvent
}

func (w *Worker) sessionOperation() {
	w.logger.Infow("worker: sessionOperation: G started")
	defer w.logger.Infow("worker: sessionOperation: G completed")

	emotionSub := pubsub.NewSubscriber(100)
	w.broker.Subscribe(emotionTopic, emotionSub)
	defer w.broker.UnSubscribe(emotionTopic, emotionSub)
	emotionCh := emotionSub.GetChannel()

	cmdSub := pubsub.NewSubscriber(10)
	w.broker.Subscribe(commandTopic, cmdSub)
	defer w.broker.UnSubscribe(commandTopic, cmdSub)
	cmdCh := cmdSub.GetChannel()

	var session *recordingSession
	var timeout <-chan time.Time

	w.logger.Infow("worker: sessionOperation: G listening")
	for {
		select {
		case data := <-emotionCh:
			if session == nil {
				continue
			}
			rec, ok := data.(emotion.Record)
			if !ok {
				continue
			}
			session.events = append(session.events, emotion.SessionEvent{
				Offset:     rec.Timestamp - emotion.UnixSeconds(session.start),
				Emotion:    rec.Dominant,
				Confidence: rec.Confidence,
				Scores:     rec.Scores,
			})

		case <-timeout:
			w.logger.Infow("worker: sessionOperation: recording stopped automatically",
				"session", session.id, "after", w.config.SessionDuration)
			w.finishSession(session, w.config.SessionDuration.Seconds())
			session, timeout = nil, nil

		case data := <-cmdCh:
			cmd, ok := data.(Command)
			if !ok {
				continue
			}
			switch cmd {
			case CommandStartRecording:
				if session != nil {
					continue
				}
				session = &recordingSession{
					id:    uuid.New().String(),
					start: time.Now(),
				}
				timeout = time.After(w.config.SessionDuration)
				w.state.Set(state.Recording, true)
				w.logger.Infow("worker: sessionOperation: recording started",
					"session", session.id, "duration", w.config.SessionDuration)

			case CommandStopRecording:
				if session == nil {
					continue
				}
				w.logger.Infow("worker: sessionOperation: recording stopped manually", "session", session.id)
				w.finishSession(session, time.Since(session.start).Seconds())
				session, timeout = nil, nil
			}

		case <-w.shut:
			w.logger.Infow("worker: sessionOperation: received shut signal")
			return
		}
	}
}

// =====================================================================================================================

func (w *Worker) finishSession(s *recordingSession, wallSeconds float64) {
	defer w.state.Set(state.Recording, false)

	analysis, err := emotion.AnalyzeSession(s.events, wallSeconds, w.policy)
	if err != nil {
		w.logger.Infow("worker: sessionOperation: no emotions recorded", "session", s.id)
		return
	}

	w.logger.Infow("worker: sessionOperation: analysis",
		"session", s.id,
		"frames", analysis.TotalFrames,
		"durations", analysis.Durations,
		"mostFrequent", analysis.MostFrequent,
		"longestDuration", analysis.LongestDuration,
		"mostSignificant", analysis.MostSignificant,
		"recommended", analysis.Recommended,
		"reason", analysis.Reason,
	)
}
