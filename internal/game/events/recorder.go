package events

import "sync"

// Recorder is a Subscriber that keeps every event it is interested in
type Recorder struct {
	id     string
	filter map[string]bool
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates a recorder for the given event types, all types when
// none are given
func NewRecorder(id string, eventTypes ...string) *Recorder {
	r := &Recorder{id: id}
	if len(eventTypes) > 0 {
		r.filter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			r.filter[t] = true
		}
	}
	return r
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) InterestedIn(eventType string) bool {
	return r.filter == nil || r.filter[eventType]
}

func (r *Recorder) HandleEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in publish order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of one type
func (r *Recorder) OfType(eventType string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}
