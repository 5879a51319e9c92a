package worker

import (
	"time"

	"github.com/hopelabs/goFerWatch/foundation/state"
)

// publishOperation fans summary buckets and voice segments out to the agent's
// redis channel. Redis failures are never fatal; the keep-alive ping restores
// the state flag once the connection is back.
func (w *Worker) publishOperation() {
	w.logger.Infow("worker: publishOperation: G started")
	defer w.logger.Infow("worker: publishOperation: G completed")

	if w.redis == nil {
		w.state.Set(state.Redis, false)
		w.logger.Infow("worker: publishOperation: redis disabled")
		<-w.shut
		return
	}

	keepAlive := time.NewTicker(10 * time.Second)
	defer keepAlive.Stop()

	w.logger.Infow("worker: publishOperation: G listening")
	for {
		select {
		case bucket := <-w.bucketCh:
			if !w.state.Get(state.Redis) {
				continue
			}
			if err := w.redis.Produce(bucket); err != nil {
				w.state.Set(state.Redis, false)
				w.logger.Errorw("worker: publishOperation: summary", "ERROR", err)
			}

		case segment := <-w.segmentCh:
			if !w.state.Get(state.Redis) {
				continue
			}
			if err := w.redis.Produce(segment); err != nil {
				w.state.Set(state.Redis, false)
				w.logger.Errorw("worker: publishOperation: segment", "ERROR", err)
			}

		case <-keepAlive.C:
			if err := w.redis.Ping(); err != nil {
				w.state.Set(state.Redis, false)
				w.logger.Errorw("worker: publishOperation: keep alive", "ERROR", err)
				continue
			}
			if !w.state.Get(state.Redis) {
				w.state.Set(state.Redis, true)
				w.logger.Infow("worker: publishOperation: redis restored")
			}

		case <-w.shut:
			w.logger.Infow("worker: publishOperation: received shut signal")
			return
		}
	}
}
