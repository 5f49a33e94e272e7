package crossroad

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type panickingObserver struct {
	BaseObserver
	mutex  sync.Mutex
	errors []error
}

func (o *panickingObserver) OnStateEnter(controller string, phase Phase, event Event) {
	panic("boom")
}

func (o *panickingObserver) OnVehicleCrossing(vehicle Vehicle, event Event) {
	panic(errors.New("crash"))
}

func (o *panickingObserver) OnError(err error, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.errors = append(o.errors, err)
}

// basicObserver implements only the required methods
type basicObserver struct {
	enters int
}

func (o *basicObserver) OnTransition(controller string, from Phase, to Phase, event Event) {}

func (o *basicObserver) OnStateEnter(controller string, phase Phase, event Event) {
	o.enters++
}

func TestObserver_BasicInterface(t *testing.T) {
	observer := NewTestObserver()

	var _ Observer = observer

	var _ ExtendedObserver = observer

	var _ ExtendedObserver = &BaseObserver{}
}

func TestObserverManager_NotifiesInOrder(t *testing.T) {
	om := NewObserverManager()
	observer := NewTestObserver()
	om.AddObserver(observer)

	event := NewEvent(EventTurn, "(n2s, s2n)")
	om.NotifyStateExit("(n2s, s2n)", PhaseAwaitingTurn, event)
	om.NotifyTransition("(n2s, s2n)", PhaseAwaitingTurn, PhaseGreen, event)
	om.NotifyStateEnter("(n2s, s2n)", PhaseGreen, event)

	if len(observer.StateExits) != 1 || observer.StateExits[0].Phase != PhaseAwaitingTurn {
		t.Errorf("Expected exit from awaiting_turn, got %v", observer.StateExits)
	}

	if len(observer.Transitions) != 1 {
		t.Fatalf("Expected 1 transition, got %d", len(observer.Transitions))
	}

	if tr := observer.Transitions[0]; tr.From != PhaseAwaitingTurn || tr.To != PhaseGreen || tr.Event.GetName() != EventTurn {
		t.Errorf("Unexpected transition %+v", tr)
	}

	if greens := observer.Greens(); len(greens) != 1 || greens[0] != "(n2s, s2n)" {
		t.Errorf("Expected (n2s, s2n) to be green, got %v", greens)
	}
}

func TestObserverManager_PanicIsolation(t *testing.T) {
	om := NewObserverManager()
	faulty := &panickingObserver{}
	observer := NewTestObserver()

	om.AddObserver(faulty)
	om.AddObserver(observer)

	om.NotifyStateEnter("(e2w, w2e)", PhaseGreen, NewEvent(EventTurn, nil))
	om.NotifyVehicleCrossing(Vehicle{ID: 0, Heading: Heading{East, West}}, NewEvent(EventCross, nil))

	if len(observer.StateEnters) != 1 {
		t.Errorf("Expected the healthy observer to see the phase entry, got %d", len(observer.StateEnters))
	}

	if observer.CrossingCount() != 1 {
		t.Errorf("Expected the healthy observer to see the crossing, got %d", observer.CrossingCount())
	}

	if len(faulty.errors) != 2 {
		t.Fatalf("Expected 2 reported panics, got %d", len(faulty.errors))
	}

	if !strings.Contains(faulty.errors[0].Error(), "OnStateEnter") {
		t.Errorf("Expected panic report to name the method, got %v", faulty.errors[0])
	}
}

func TestObserverManager_BasicObserverSkipsExtended(t *testing.T) {
	om := NewObserverManager()
	observer := &basicObserver{}
	om.AddObserver(observer)

	om.NotifyStateEnter("(n2w, s2e)", PhaseGreen, NewEvent(EventTurn, nil))
	om.NotifyControllerReady("(n2w, s2e)", NewEvent(EventReady, nil))
	om.NotifyError(errors.New("ignored"), NewEvent(EventStop, nil))

	if observer.enters != 1 {
		t.Errorf("Expected 1 phase entry, got %d", observer.enters)
	}
}

func TestObserverManager_RemoveObserver(t *testing.T) {
	om := NewObserverManager()
	observer := NewTestObserver()

	om.AddObserver(observer)
	om.RemoveObserver(observer)
	om.NotifyControllerReady("(n2s, s2n)", NewEvent(EventReady, nil))

	if len(observer.Ready) != 0 {
		t.Errorf("Expected no notifications after removal, got %d", len(observer.Ready))
	}
}

func TestEvent_Fields(t *testing.T) {
	vehicle := Vehicle{ID: 3, Heading: Heading{South, West}}
	event := NewEventWithMetadata(EventArrive, vehicle, map[string]any{"lane": "south"})

	if event.GetID() == "" || event.GetID() == NewEvent(EventArrive, nil).GetID() {
		t.Error("Expected unique event IDs")
	}

	if event.GetName() != EventArrive {
		t.Errorf("Expected event name %q, got %q", EventArrive, event.GetName())
	}

	if event.GetData() != vehicle {
		t.Errorf("Expected vehicle data, got %v", event.GetData())
	}

	if event.GetTimestamp().IsZero() {
		t.Error("Expected event timestamp")
	}

	metadata := event.GetMetadata()
	metadata["lane"] = "north"
	if event.GetMetadata()["lane"] != "south" {
		t.Error("Expected metadata to be copied")
	}

	if vehicle.String() != "3 s2w" {
		t.Errorf("Expected vehicle string '3 s2w', got %q", vehicle.String())
	}
}
