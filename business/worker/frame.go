package worker

import (
	"context"

	"github.com/hopelabs/goFerWatch/foundation/pubsub"
	"github.com/hopelabs/goFerWatch/foundation/state"
)

func (w *Worker) frameStreamOperation() {
	w.logger.Infow("worker: frameStreamOperation: G started")
	defer w.logger.Infow("worker: frameStreamOperation: G completed")

	defer w.camera.Close()

	cmdSub := pubsub.NewSubscriber(10)
	w.broker.Subscribe(commandTopic, cmdSub)
	defer w.broker.UnSubscribe(commandTopic, cmdSub)
	cmdCh := cmdSub.GetChannel()

	ctx, cancel := context.WithCancel(context.Background())
	defer func() { cancel() }()

	streamCh := w.camera.Stream(ctx)

	w.logger.Infow("worker: frameStreamOperation: G listening")
	for {
		select {
		case frame, open := <-streamCh:
			if !open {
				// Stream goroutine exited after a break; wait for the
				// reconnect command.
				streamCh = nil
				continue
			}
			if frame.Error != nil {
				if w.state.Get(state.Camera) {
					w.state.Set(state.Camera, false)
					w.logger.Errorw("worker: frameStreamOperation: connection lost, awaiting reconnect command", "ERROR", frame.Error)
				}
				continue
			}
			if !w.state.Get(state.Camera) {
				w.state.Set(state.Camera, true)
				w.logger.Infow("worker: frameStreamOperation: connection restored")
			}
			if err := w.broker.Publish(frameTopic, frame.Data); err != nil {
				w.Shutdown(err)
				return
			}

		case data := <-cmdCh:
			if data != CommandReconnect {
				continue
			}
			w.logger.Infow("worker: frameStreamOperation: reconnecting")
			cancel()
			w.camera.Close()
			if err := w.camera.Connect(); err != nil {
				w.logger.Errorw("worker: frameStreamOperation: reconnect", "ERROR", err)
				continue
			}
			ctx, cancel = context.WithCancel(context.Background())
			streamCh = w.camera.Stream(ctx)
			w.state.Set(state.Camera, true)
			w.logger.Infow("worker: frameStreamOperation: reconnected")

		case <-w.shut:
			w.logger.Infow("worker: frameStreamOperation: received shut signal")
			return
		}
	}
}
