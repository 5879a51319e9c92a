package pubsub_test

import (
	"sync"
	"testing"

	"github.com/hopelabs/goFerWatch/foundation/pubsub"
)

func TestBroker(t *testing.T) {
	b := pubsub.NewBroker()
	s1 := pubsub.NewSubscriber(1)
	s2 := pubsub.NewSubscriber(1)

	b.Subscribe("frames", s1)
	b.Subscribe("frames", s2)

	var wg sync.WaitGroup
	wg.Add(2)

	got := make([]any, 2)
	for i, sub := range []*pubsub.Subscriber{s1, s2} {
		go func(i int, sub *pubsub.Subscriber) {
			defer wg.Done()
			got[i] = <-sub.GetChannel()
		}(i, sub)
	}

	if err := b.Publish("frames", "payload"); err != nil {
		t.Fatal(err)
	}

	wg.Wait()

	for i := range got {
		if got[i] != "payload" {
			t.Fatalf("subscriber %d: got %v, want %q", i, got[i], "payload")
		}
	}
}

func TestBrokerUnknownTopic(t *testing.T) {
	b := pubsub.NewBroker()
	if err := b.Publish("nobody-listens", 1); err == nil {
		t.Fatal("expected error publishing to unknown topic")
	}
}

func TestSubscriberDropsWhenFull(t *testing.T) {
	b := pubsub.NewBroker()
	s := pubsub.NewSubscriber(1)
	b.Subscribe("frames", s)

	for i := 0; i < 3; i++ {
		if err := b.Publish("frames", i); err != nil {
			t.Fatal(err)
		}
	}

	if got := <-s.GetChannel(); got != 0 {
		t.Fatalf("got %v, want first published value 0", got)
	}
	select {
	case got := <-s.GetChannel():
		t.Fatalf("expected overflow to be dropped, got %v", got)
	default:
	}
}

func TestBrokerUnSubscribe(t *testing.T) {
	b := pubsub.NewBroker()
	s := pubsub.NewSubscriber(1)

	b.Subscribe("frames", s)
	if err := b.UnSubscribe("frames", s); err != nil {
		t.Fatal(err)
	}

	if _, open := <-s.GetChannel(); open {
		t.Fatal("expected subscriber channel to be closed")
	}

	if err := b.UnSubscribe("missing", s); err == nil {
		t.Fatal("expected error unsubscribing from unknown topic")
	}
}
