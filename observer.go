package crossroad

import (
	"fmt"
	"sync"
)

// Observer represents an entity that observes controller phase changes
type Observer interface {
	// OnTransition is called when a controller changes phase
	OnTransition(controller string, from Phase, to Phase, event Event)

	// OnStateEnter is called when a controller enters a phase
	OnStateEnter(controller string, phase Phase, event Event)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnStateExit is called when a controller leaves a phase
	OnStateExit(controller string, phase Phase, event Event)

	// OnControllerReady is called once a controller is initialized, before
	// the startup rendezvous
	OnControllerReady(controller string, event Event)

	// OnVehicleArrived is called when a vehicle reaches its lane
	OnVehicleArrived(vehicle Vehicle, event Event)

	// OnVehicleCrossing is called when a vehicle is released into the intersection
	OnVehicleCrossing(vehicle Vehicle, event Event)

	// OnError is called when an error occurs during processing
	OnError(err error, event Event)

	// OnSimulationStarted is called before the controllers are spawned
	OnSimulationStarted(event Event)

	// OnSimulationStopped is called after every controller has been joined
	OnSimulationStopped(event Event)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(controller string, from Phase, to Phase, event Event) {}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(controller string, phase Phase, event Event) {}

// OnStateExit implements the optional ExtendedObserver method
func (o *BaseObserver) OnStateExit(controller string, phase Phase, event Event) {}

// OnControllerReady implements the optional ExtendedObserver method
func (o *BaseObserver) OnControllerReady(controller string, event Event) {}

// OnVehicleArrived implements the optional ExtendedObserver method
func (o *BaseObserver) OnVehicleArrived(vehicle Vehicle, event Event) {}

// OnVehicleCrossing implements the optional ExtendedObserver method
func (o *BaseObserver) OnVehicleCrossing(vehicle Vehicle, event Event) {}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(err error, event Event) {}

// OnSimulationStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnSimulationStarted(event Event) {}

// OnSimulationStopped implements the optional ExtendedObserver method
func (o *BaseObserver) OnSimulationStopped(event Event) {}

// ObserverManager manages a collection of observers. Notifications may come
// from any controller or vehicle goroutine
type ObserverManager struct {
	mutex     sync.RWMutex
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	om.mutex.Lock()
	defer om.mutex.Unlock()
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

func (om *ObserverManager) snapshot() []Observer {
	om.mutex.RLock()
	defer om.mutex.RUnlock()
	observers := make([]Observer, len(om.observers))
	copy(observers, om.observers)
	return observers
}

// call runs fn against one observer. A panicking observer is reported through
// OnError and never reaches the caller
func call(observer Observer, method string, event Event, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if extObs, ok := observer.(ExtendedObserver); ok {
				func() {
					defer func() { recover() }()
					extObs.OnError(fmt.Errorf("observer panic in %s: %v", method, r), event)
				}()
			}
		}
	}()
	fn()
}

func (om *ObserverManager) notifyExtended(method string, event Event, fn func(ExtendedObserver)) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			call(observer, method, event, func() { fn(extObs) })
		}
	}
}

// NotifyTransition notifies all observers of a phase change
func (om *ObserverManager) NotifyTransition(controller string, from Phase, to Phase, event Event) {
	for _, observer := range om.snapshot() {
		observer := observer
		call(observer, "OnTransition", event, func() { observer.OnTransition(controller, from, to, event) })
	}
}

// NotifyStateEnter notifies all observers of phase entry
func (om *ObserverManager) NotifyStateEnter(controller string, phase Phase, event Event) {
	for _, observer := range om.snapshot() {
		observer := observer
		call(observer, "OnStateEnter", event, func() { observer.OnStateEnter(controller, phase, event) })
	}
}

// NotifyStateExit notifies all observers of phase exit
func (om *ObserverManager) NotifyStateExit(controller string, phase Phase, event Event) {
	om.notifyExtended("OnStateExit", event, func(o ExtendedObserver) { o.OnStateExit(controller, phase, event) })
}

// NotifyControllerReady notifies all observers that a controller is ready
func (om *ObserverManager) NotifyControllerReady(controller string, event Event) {
	om.notifyExtended("OnControllerReady", event, func(o ExtendedObserver) { o.OnControllerReady(controller, event) })
}

// NotifyVehicleArrived notifies all observers of a vehicle arrival
func (om *ObserverManager) NotifyVehicleArrived(vehicle Vehicle, event Event) {
	om.notifyExtended("OnVehicleArrived", event, func(o ExtendedObserver) { o.OnVehicleArrived(vehicle, event) })
}

// NotifyVehicleCrossing notifies all observers that a vehicle entered the intersection
func (om *ObserverManager) NotifyVehicleCrossing(vehicle Vehicle, event Event) {
	om.notifyExtended("OnVehicleCrossing", event, func(o ExtendedObserver) { o.OnVehicleCrossing(vehicle, event) })
}

// NotifyError notifies all observers of errors
func (om *ObserverManager) NotifyError(err error, event Event) {
	for _, observer := range om.snapshot() {
		if extObs, ok := observer.(ExtendedObserver); ok {
			func() {
				defer func() { recover() }()
				extObs.OnError(err, event)
			}()
		}
	}
}

// NotifySimulationStarted notifies all observers that a run has started
func (om *ObserverManager) NotifySimulationStarted(event Event) {
	om.notifyExtended("OnSimulationStarted", event, func(o ExtendedObserver) { o.OnSimulationStarted(event) })
}

// NotifySimulationStopped notifies all observers that a run has finished
func (om *ObserverManager) NotifySimulationStopped(event Event) {
	om.notifyExtended("OnSimulationStopped", event, func(o ExtendedObserver) { o.OnSimulationStopped(event) })
}
