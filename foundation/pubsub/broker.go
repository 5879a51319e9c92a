package pubsub

import (
	"fmt"
	"sync"
	"time"
)

// subscribeWait bounds how long Publish waits for a topic to come into
// existence before giving up. Operations subscribe during worker startup, so
// in practice the wait only covers the startup window.
const subscribeWait = 3 * time.Second

type Broker struct {
	topics map[string][]*Subscriber
	sync.RWMutex
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string][]*Subscriber),
	}
}

func (b *Broker) Publish(topic string, data any) error {
	deadline := time.Now().Add(subscribeWait)

	for {
		b.RLock()
		subs, exists := b.topics[topic]

		// Signal while holding the read lock so UnSubscribe cannot close a
		// channel mid fan-out. Signal never blocks.
		if exists {
			for _, sub := range subs {
				sub.Signal(data)
			}
			b.RUnlock()
			return nil
		}
		b.RUnlock()

		if time.Now().After(deadline) {
			return fmt.Errorf("topic[%s] does not exist", topic)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (b *Broker) Subscribe(topic string, s *Subscriber) {
	b.Lock()
	defer b.Unlock()
	{
		b.topics[topic] = append(b.topics[topic], s)
	}
}

func (b *Broker) UnSubscribe(topic string, s *Subscriber) error {
	b.Lock()
	defer b.Unlock()
	{
		subs, exists := b.topics[topic]
		if !exists {
			return fmt.Errorf("topic[%s] does not exist", topic)
		}

		b.topics[topic] = removeFromSlice(subs, s)
		s.CloseChannel()
	}

	return nil
}

// =====================================================================================================================

func removeFromSlice[T comparable](s []T, d T) []T {
	for i := range s {
		if s[i] == d {
			s[i] = s[len(s)-1]
			return s[:len(s)-1]
		}
	}
	return s
}
