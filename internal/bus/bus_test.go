package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllListeners(t *testing.T) {
	b := New()

	calls := 0
	b.Subscribe(func() { calls++ })
	b.Subscribe(func() { calls++ })

	b.Publish()
	assert.Equal(t, 2, calls)

	b.Publish()
	assert.Equal(t, 4, calls)
}

func TestPublishOnEmptyBusIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { New().Publish() })
}

func TestPanickingListenerDoesNotBlockOthers(t *testing.T) {
	b := New()

	b.Subscribe(func() { panic("listener blew up") })
	called := 0
	b.Subscribe(func() { called++ })

	assert.NotPanics(t, func() { b.Publish() })
	assert.Equal(t, 1, called, "surviving listener must still run exactly once")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	called := 0
	unsubscribe := b.Subscribe(func() { called++ })

	b.Publish()
	unsubscribe()
	b.Publish()

	assert.Equal(t, 1, called)
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := New()

	var unsubscribe func()
	called := 0
	unsubscribe = b.Subscribe(func() {
		called++
		unsubscribe()
	})

	assert.NotPanics(t, func() { b.Publish() })
	b.Publish()

	assert.Equal(t, 1, called)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New()

	unsubscribe := b.Subscribe(func() {})
	unsubscribe()
	assert.NotPanics(t, unsubscribe)
}
