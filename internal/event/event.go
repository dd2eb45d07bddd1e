// Package event is a synchronous publish/subscribe hub used to fan out
// gameplay signals to observers such as the hazard coordinator and audio.
package event

// EventType names a kind of event.
type EventType string

// Event carries a type and an optional payload.
type Event struct {
	Type EventType
	Data any
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// Dispatcher delivers events to listeners in subscription order. Dispatch runs
// listeners on the caller's goroutine.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for eventType.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeFunc registers fn for every listed type and returns the listener so
// it can be unsubscribed later.
func (d *Dispatcher) SubscribeFunc(fn func(Event), types ...EventType) Listener {
	l := &funcListener{fn: fn}
	for _, t := range types {
		d.Subscribe(t, l)
	}
	return l
}

// Unsubscribe removes listener from eventType.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	listeners, ok := d.listeners[eventType]
	if !ok {
		return
	}
	for i, l := range listeners {
		if l == listener {
			d.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return
		}
	}
}

// Dispatch sends event to every listener subscribed to its type.
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
}

// funcListener is comparable by pointer so it can be unsubscribed.
type funcListener struct {
	fn func(Event)
}

func (l *funcListener) OnEvent(e Event) { l.fn(e) }
