package observers

import (
	"fmt"
	"sync"

	"github.com/anggasct/crossroad"
)

// ValidationObserver checks the safety rules of the intersection while a run
// is in progress: one light group green at a time, green phases taken in ring
// order, and vehicles only released under their own group's green
type ValidationObserver struct {
	crossroad.BaseObserver

	green      map[string]bool
	order      []string
	ring       []string
	violations []string
	mutex      sync.RWMutex
}

// NewValidationObserver creates a validation observer expecting the given ring
// of controller names. An empty ring skips the order check
func NewValidationObserver(ring ...string) *ValidationObserver {
	return &ValidationObserver{
		green:      make(map[string]bool),
		order:      make([]string, 0),
		ring:       ring,
		violations: make([]string, 0),
	}
}

// addViolation must be called with the mutex held
func (o *ValidationObserver) addViolation(message string) {
	o.violations = append(o.violations, message)
}

// OnStateEnter validates green exclusivity and ring order
func (o *ValidationObserver) OnStateEnter(controller string, phase crossroad.Phase, event crossroad.Event) {
	if phase != crossroad.PhaseGreen {
		return
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	for other, isGreen := range o.green {
		if isGreen && other != controller {
			o.addViolation(fmt.Sprintf("%s turned green while %s is green", controller, other))
		}
	}

	if n := len(o.ring); n > 0 {
		expected := o.ring[len(o.order)%n]
		if expected != controller {
			o.addViolation(fmt.Sprintf("green phase %d went to %s, expected %s", len(o.order), controller, expected))
		}
	}

	o.green[controller] = true
	o.order = append(o.order, controller)
}

// OnStateExit clears the green flag
func (o *ValidationObserver) OnStateExit(controller string, phase crossroad.Phase, event crossroad.Event) {
	if phase != crossroad.PhaseGreen {
		return
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.green[controller] = false
}

// OnVehicleCrossing validates that the vehicle's light is green
func (o *ValidationObserver) OnVehicleCrossing(vehicle crossroad.Vehicle, event crossroad.Event) {
	group, ok := vehicle.Heading.Group()

	o.mutex.Lock()
	defer o.mutex.Unlock()

	if !ok {
		o.addViolation(fmt.Sprintf("vehicle %s has no light group", vehicle))
		return
	}

	if name := crossroad.ControllerName(group); !o.green[name] {
		o.addViolation(fmt.Sprintf("vehicle %s crossed while %s is red", vehicle, name))
	}
}

// GetViolations returns all recorded violations
func (o *ValidationObserver) GetViolations() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.violations))
	copy(result, o.violations)
	return result
}

// GetGreenOrder returns the controllers in the order they turned green
func (o *ValidationObserver) GetGreenOrder() []string {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	result := make([]string, len(o.order))
	copy(result, o.order)
	return result
}

// IsValid returns true if no violations were recorded
func (o *ValidationObserver) IsValid() bool {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.violations) == 0
}
