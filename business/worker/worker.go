package worker

import (
	"sync"

	"github.com/hopelabs/goFerWatch/business/emotion"
	"github.com/hopelabs/goFerWatch/business/ledger"
	"github.com/hopelabs/goFerWatch/foundation/camera"
	"github.com/hopelabs/goFerWatch/foundation/pubsub"
	"github.com/hopelabs/goFerWatch/foundation/redis"
	"github.com/hopelabs/goFerWatch/foundation/state"
	"go.uber.org/zap"
)

const (
	frameTopic   = "frames"
	emotionTopic = "emotions"
	commandTopic = "commands"
)

type Worker struct {
	config Config
	policy emotion.BiasPolicy
	state  *state.State
	logger *zap.SugaredLogger

	camera *camera.Client
	redis  *redis.Redis

	ledger *ledger.Ledger
	broker *pubsub.Broker

	wg       sync.WaitGroup
	shut     chan struct{}
	shutOnce sync.Once
	error    chan error

	bucketCh  chan emotion.Bucket
	segmentCh chan emotion.VoiceSegment
}

func Run(s Settings) <-chan error {
	w := &Worker{
		config:    s.Config.withDefaults(),
		policy:    s.Policy,
		state:     state.NewState(),
		logger:    s.Logger,
		camera:    s.Camera,
		redis:     s.Redis,
		ledger:    ledger.New(),
		broker:    pubsub.NewBroker(),
		shut:      make(chan struct{}),
		error:     make(chan error),
		bucketCh:  make(chan emotion.Bucket, 100),
		segmentCh: make(chan emotion.VoiceSegment, 10),
	}

	operations := []func(){
		w.frameStreamOperation,
		w.extractionOperation,
		w.ledgerOperation,
		w.sessionOperation,
		w.commandOperation,
		w.queryOperation,
		w.publishOperation,
	}

	g := len(operations)
	w.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return w.error
}

func (w *Worker) Shutdown(err error) {
	w.shutOnce.Do(func() {
		w.logger.Infow("worker: shutdown: started")
		w.logger.Infow("worker: shutdown: terminate goroutines")
		close(w.shut)

		go func() {
			w.wg.Wait()
			w.logger.Infow("worker: shutdown: completed")
			w.error <- err
		}()
	})
}
