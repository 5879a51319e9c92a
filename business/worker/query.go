package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/foundation/agentlink"
)

// queryOperation serves the emotional context query to the agent layer.
func (w *Worker) queryOperation() {
	w.logger.Infow("worker: queryOperation: G started")
	defer w.logger.Infow("worker: queryOperation: G completed")

	server := agentlink.New(w.config.AgentAddr, w.logger, w.handleQuery)

	errCh, err := server.Start()
	if err != nil {
		w.Shutdown(err)
		return
	}
	w.logger.Infow("worker: queryOperation: agent endpoint listening", "addr", server.Addr())

	select {
	case err := <-errCh:
		w.Shutdown(err)

	case <-w.shut:
		w.logger.Infow("worker: queryOperation: received shut signal")
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			w.logger.Errorw("worker: queryOperation: server shutdown", "ERROR", err)
		}
	}
}

func (w *Worker) handleQuery(q agentlink.Query) agentlink.Response {
	window := q.Window
	if window <= 0 {
		window = w.config.ContextWindow
	}

	now := emotion.UnixSeconds(time.Now())
	sum := emotion.DominantInRange(w.ledger.Snapshot(), now-window, now, w.policy)

	switch q.Cmd {
	case "context":
		return agentlink.Response{OK: true, Context: emotion.ContextReport(sum, window)}

	case "snapshot":
		return agentlink.Response{OK: true, Summary: sum}

	default:
		return agentlink.Response{OK: false, Error: fmt.Sprintf("unknown cmd %q", q.Cmd)}
	}
}
