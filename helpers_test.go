package crossroad

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestObserver captures every observer callback for later inspection
type TestObserver struct {
	mutex       sync.RWMutex
	Transitions []TransitionEvent
	StateEnters []PhaseEvent
	StateExits  []PhaseEvent
	Ready       []string
	Arrived     []Vehicle
	Crossing    []Vehicle
	Vehicles    []Event
	Errors      []error
	Started     []Event
	Stopped     []Event
}

type TransitionEvent struct {
	Controller string
	From       Phase
	To         Phase
	Event      Event
}

type PhaseEvent struct {
	Controller string
	Phase      Phase
	Event      Event
}

func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnTransition(controller string, from Phase, to Phase, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Transitions = append(o.Transitions, TransitionEvent{controller, from, to, event})
}

func (o *TestObserver) OnStateEnter(controller string, phase Phase, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateEnters = append(o.StateEnters, PhaseEvent{controller, phase, event})
}

func (o *TestObserver) OnStateExit(controller string, phase Phase, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.StateExits = append(o.StateExits, PhaseEvent{controller, phase, event})
}

func (o *TestObserver) OnControllerReady(controller string, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Ready = append(o.Ready, controller)
}

func (o *TestObserver) OnVehicleArrived(vehicle Vehicle, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Arrived = append(o.Arrived, vehicle)
	o.Vehicles = append(o.Vehicles, event)
}

func (o *TestObserver) OnVehicleCrossing(vehicle Vehicle, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Crossing = append(o.Crossing, vehicle)
	o.Vehicles = append(o.Vehicles, event)
}

func (o *TestObserver) OnError(err error, event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Errors = append(o.Errors, err)
}

func (o *TestObserver) OnSimulationStarted(event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Started = append(o.Started, event)
}

func (o *TestObserver) OnSimulationStopped(event Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Stopped = append(o.Stopped, event)
}

// Greens returns the controllers in the order they turned green
func (o *TestObserver) Greens() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, 0)
	for _, enter := range o.StateEnters {
		if enter.Phase == PhaseGreen {
			result = append(result, enter.Controller)
		}
	}
	return result
}

func (o *TestObserver) CrossingCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Crossing)
}

func (o *TestObserver) ErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Errors)
}

// fixedSource cycles through a list of headings and always returns the same
// fraction, so arrival spacing is predictable
type fixedSource struct {
	mutex    sync.Mutex
	headings []Heading
	next     int
	fraction float64
}

func newFixedSource(fraction float64, headings ...Heading) *fixedSource {
	return &fixedSource{headings: headings, fraction: fraction}
}

func (s *fixedSource) Heading() Heading {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	h := s.headings[s.next%len(s.headings)]
	s.next++
	return h
}

func (s *fixedSource) Float64() float64 {
	return s.fraction
}

// testConfig returns a fast configuration with a 10ms time unit
func testConfig(vehicles int) *Config {
	config := DefaultConfig()
	config.Vehicles = vehicles
	config.MaxArrivalGap = 2
	config.IntersectionGap = 1
	config.Green = GreenIntervals{TrunkForward: 5, MinorForward: 5, TrunkRight: 5}
	config.AllRed = 1
	config.TimeUnit = Duration(10 * time.Millisecond)
	return config
}

func newTestSimulation(t *testing.T, config *Config, opts ...Option) (*Simulation, *TestObserver) {
	t.Helper()

	observer := NewTestObserver()
	sim, err := NewSimulation(config, append(opts, WithObserver(observer))...)
	require.NoError(t, err)
	return sim, observer
}
