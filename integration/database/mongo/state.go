package mongo

import (
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/event"
)

// State is the connection state of a client. Connected is the only ready value.
type State int32

const (
	Disconnected  State = 0
	Connected     State = 1
	Connecting    State = 2
	Disconnecting State = 3
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Connecting:
		return "connecting"
	case Disconnecting:
		return "disconnecting"
	default:
		return "disconnected"
	}
}

// Tracker records the current connection state. The zero value is
// Disconnected and safe for concurrent use.
type Tracker struct {
	state atomic.Int32
}

// NewTracker returns a tracker in the Disconnected state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// State returns the current state. A nil tracker is always Disconnected.
func (t *Tracker) State() State {
	if t == nil {
		return Disconnected
	}
	return State(t.state.Load())
}

// Set stores s. It is a no-op on a nil tracker.
func (t *Tracker) Set(s State) {
	if t == nil {
		return
	}
	t.state.Store(int32(s))
}

// Ready reports whether the state is Connected.
func (t *Tracker) Ready() bool {
	return t.State() == Connected
}

// ServerMonitor returns driver callbacks that keep the tracker in sync with
// the driver's view of the whole deployment. Individual heartbeats are not
// used: on a replica set one member failing says nothing about the primary.
func (t *Tracker) ServerMonitor() *event.ServerMonitor {
	return &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			if Writable(e.NewDescription) {
				t.Set(Connected)
				return
			}
			t.Set(Disconnected)
		},
		TopologyClosed: func(*event.TopologyClosedEvent) {
			t.Set(Disconnected)
		},
	}
}

// Server kinds as reported in event.ServerDescription.Kind.
const (
	kindStandalone   = "Standalone"
	kindRSPrimary    = "RSPrimary"
	kindMongos       = "Mongos"
	kindLoadBalancer = "LoadBalancer"
	kindUnknown      = "Unknown"

	topologySingle = "Single"
)

// Writable reports whether the topology has a server that accepts writes:
// a replica set primary, a standalone, a mongos or a load balancer. A direct
// connection to any known server also counts.
func Writable(desc event.TopologyDescription) bool {
	for _, srv := range desc.Servers {
		switch srv.Kind {
		case kindRSPrimary, kindStandalone, kindMongos, kindLoadBalancer:
			return true
		case "", kindUnknown:
			continue
		}
		if desc.Kind == topologySingle {
			return true
		}
	}
	return false
}
