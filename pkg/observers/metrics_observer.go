package observers

import (
	"sync"
	"time"

	"github.com/anggasct/crossroad"
)

// MetricsObserver collects metrics about a simulation run
type MetricsObserver struct {
	crossroad.BaseObserver

	greenPhases      map[string]int
	greenTime        map[string]time.Duration
	transitionCounts map[string]int
	arrivals         map[string]int
	crossings        map[string]int
	errorCount       int
	greenSince       map[string]time.Time
	mutex            sync.RWMutex
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{
		greenPhases:      make(map[string]int),
		greenTime:        make(map[string]time.Duration),
		transitionCounts: make(map[string]int),
		arrivals:         make(map[string]int),
		crossings:        make(map[string]int),
		greenSince:       make(map[string]time.Time),
	}
}

// OnStateEnter records the start of green phases
func (o *MetricsObserver) OnStateEnter(controller string, phase crossroad.Phase, event crossroad.Event) {
	if phase != crossroad.PhaseGreen {
		return
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.greenPhases[controller]++
	o.greenSince[controller] = event.GetTimestamp()
}

// OnStateExit records how long green phases lasted
func (o *MetricsObserver) OnStateExit(controller string, phase crossroad.Phase, event crossroad.Event) {
	if phase != crossroad.PhaseGreen {
		return
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	if since, ok := o.greenSince[controller]; ok {
		o.greenTime[controller] += event.GetTimestamp().Sub(since)
		delete(o.greenSince, controller)
	}
}

// OnTransition records transition metrics
func (o *MetricsObserver) OnTransition(controller string, from crossroad.Phase, to crossroad.Phase, event crossroad.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.transitionCounts[from.String()+"->"+to.String()]++
}

// OnVehicleArrived counts arrivals per heading
func (o *MetricsObserver) OnVehicleArrived(vehicle crossroad.Vehicle, event crossroad.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.arrivals[vehicle.Heading.String()]++
}

// OnVehicleCrossing counts crossings per heading
func (o *MetricsObserver) OnVehicleCrossing(vehicle crossroad.Vehicle, event crossroad.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.crossings[vehicle.Heading.String()]++
}

// OnError records error metrics
func (o *MetricsObserver) OnError(err error, event crossroad.Event) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.errorCount++
}

func copyCounts[V int | time.Duration](src map[string]V) map[string]V {
	result := make(map[string]V, len(src))
	for k, v := range src {
		result[k] = v
	}
	return result
}

// GetGreenPhaseCounts returns how many green phases each controller ran
func (o *MetricsObserver) GetGreenPhaseCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.greenPhases)
}

// GetGreenTime returns the time each controller spent green, completed phases only
func (o *MetricsObserver) GetGreenTime() map[string]time.Duration {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.greenTime)
}

// GetTransitionCounts returns the number of times each transition occurred
func (o *MetricsObserver) GetTransitionCounts() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.transitionCounts)
}

// GetArrivals returns arrivals per heading name
func (o *MetricsObserver) GetArrivals() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.arrivals)
}

// GetCrossings returns crossings per heading name
func (o *MetricsObserver) GetCrossings() map[string]int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return copyCounts(o.crossings)
}

// GetErrorCount returns the number of errors
func (o *MetricsObserver) GetErrorCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()

	return o.errorCount
}

// Reset resets all metrics
func (o *MetricsObserver) Reset() {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	o.greenPhases = make(map[string]int)
	o.greenTime = make(map[string]time.Duration)
	o.transitionCounts = make(map[string]int)
	o.arrivals = make(map[string]int)
	o.crossings = make(map[string]int)
	o.errorCount = 0
	o.greenSince = make(map[string]time.Time)
}
