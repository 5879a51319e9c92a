package worker

import (
	"time"

	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/foundation/external/faceapi"
	"github.com/hopelabs/goFerWatch/foundation/pubsub"
)

func (w *Worker) extractionOperation() {
	w.logger.Infow("worker: extractionOperation: G started")
	defer w.logger.Infow("worker: extractionOperation: G completed")

	frameSub := pubsub.NewSubscriber(100)
	w.broker.Subscribe(frameTopic, frameSub)
	defer w.broker.UnSubscribe(frameTopic, frameSub)
	frameCh := frameSub.GetChannel()

	w.logger.Infow("worker: extractionOperation: G listening")
	for {
		select {
		case data := <-frameCh:
			frame, ok := data.([]byte)
			if !ok {
				continue
			}

			// Blocking call; classifier latency bounds frame throughput.
			result, err := faceapi.Analyze(w.config.FaceApiEndpoint, w.config.FaceApiKey, frame)
			if err != nil {
				w.logger.Errorw("worker: extractionOperation: analyze", "ERROR", err)
				continue
			}

			now := time.Now()
			for _, face := range result.Faces {
				if len(face.Emotion) == 0 {
					continue
				}

				rec := emotion.NewRecord(now, emotion.Scores(face.Emotion), w.policy)
				if err := w.broker.Publish(emotionTopic, rec); err != nil {
					w.Shutdown(err)
					return
				}
			}

		case <-w.shut:
			w.logger.Infow("worker: extractionOperation: received shut signal")
			return
		}
	}
}
