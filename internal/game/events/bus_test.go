package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridSkirmishEvolution/internal/game/core"
)

const testRun = "run-test"

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewGameStartedEvent(testRun, 3, 8, 8, 200))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, 3, receivedEvent.GameID())
	assert.Equal(t, testRun, receivedEvent.RunID())
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus()

	handler1Called := false
	handler2Called := false

	id1 := bus.SubscribeFunc(TypePlyApplied, func(e Event) { handler1Called = true })
	id2 := bus.SubscribeFunc(TypePlyApplied, func(e Event) { handler2Called = true })
	assert.NotEqual(t, id1, id2)

	bus.Publish(NewPlyAppliedEvent(testRun, 1, 0, 0, 1, core.NewMove(0, core.MoveWalk, 2)))

	assert.True(t, handler1Called)
	assert.True(t, handler2Called)
	assert.True(t, bus.HasInterest(TypePlyApplied))
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
	log             *[]string
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
	if ts.log != nil {
		*ts.log = append(*ts.log, ts.id)
	}
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}

	bus.Subscribe(subscriber)

	bus.Publish(NewGameStartedEvent(testRun, 1, 8, 8, 200))
	bus.Publish(NewPlyAppliedEvent(testRun, 1, 0, 0, 1, core.NewMove(1, core.MoveAttack, 3)))
	bus.Publish(NewGameEndedEvent(testRun, 1, 0, 12, 23, [2]int{10, 3}, [2]int{4, 0}, 24.5, 0))

	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())

	bus.Unsubscribe(subscriber.ID())
	bus.Publish(NewGameStartedEvent(testRun, 2, 8, 8, 200))

	assert.Len(t, subscriber.receivedEvents, 2)
	assert.False(t, bus.HasInterest(TypeGameStarted))
}

func TestEventBusSubscriberOrder(t *testing.T) {
	bus := NewEventBus()
	var calls []string

	for _, id := range []string{"first", "second", "third"} {
		bus.Subscribe(&TestSubscriber{id: id, log: &calls})
	}
	bus.Unsubscribe("second")

	bus.Publish(NewGameStartedEvent(testRun, 1, 8, 8, 200))
	assert.Equal(t, []string{"first", "third"}, calls)
}

func TestEventBusHasInterest(t *testing.T) {
	bus := NewEventBus()
	assert.False(t, bus.HasInterest(TypePlyApplied))

	bus.Subscribe(&TestSubscriber{
		id:              "ended-only",
		interestedTypes: map[string]bool{TypeGameEnded: true},
	})
	assert.False(t, bus.HasInterest(TypePlyApplied))
	assert.True(t, bus.HasInterest(TypeGameEnded))

	bus.SubscribeFunc(TypePlyApplied, func(Event) {})
	assert.True(t, bus.HasInterest(TypePlyApplied))
}

type panickingSubscriber struct{}

func (panickingSubscriber) ID() string               { return "panics" }
func (panickingSubscriber) HandleEvent(Event)        { panic("boom") }
func (panickingSubscriber) InterestedIn(string) bool { return true }

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(panickingSubscriber{})

	after := &TestSubscriber{id: "after"}
	bus.Subscribe(after)

	assert.NotPanics(t, func() {
		bus.Publish(NewGameStartedEvent(testRun, 1, 8, 8, 200))
	})
	assert.Len(t, after.receivedEvents, 1)
}

func TestRecorder(t *testing.T) {
	bus := NewEventBus()
	all := NewRecorder("all")
	ended := NewRecorder("ended", TypeGameEnded)
	bus.Subscribe(all)
	bus.Subscribe(ended)

	bus.Publish(NewGameStartedEvent(testRun, 1, 8, 8, 200))
	bus.Publish(NewGameEndedEvent(testRun, 1, -1, 200, 400, [2]int{3, 3}, [2]int{4, 4}, 0, 0))

	assert.Len(t, all.Events(), 2)
	assert.Len(t, all.OfType(TypeGameStarted), 1)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, -1, ended.Events()[0].(*GameEndedEvent).Winner)
}
