// Package observers provides observers for monitoring a simulation run
package observers

import (
	"fmt"
	"sync"
	"time"

	"github.com/anggasct/crossroad"
	"github.com/pbergman/logger"
)

// LogLevel represents the logging level
type LogLevel int

const (
	// LogError logs only errors
	LogError LogLevel = iota
	// LogInfo logs errors and the intersection log lines
	LogInfo
	// LogDebug logs everything, including hand-offs and run summaries
	LogDebug
)

// LoggingObserver writes the intersection log lines through a logger.
// Phase and vehicle lines go out at notice level, bookkeeping at debug.
// Controllers and vehicles report concurrently, so writes are serialized
type LoggingObserver struct {
	crossroad.BaseObserver
	level  LogLevel
	logger *logger.Logger
	mutex  sync.Mutex
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(level LogLevel, log *logger.Logger) *LoggingObserver {
	return &LoggingObserver{level: level, logger: log}
}

func (o *LoggingObserver) log(level LogLevel, message string) {
	if level > o.level {
		return
	}

	o.mutex.Lock()
	defer o.mutex.Unlock()

	switch level {
	case LogError:
		o.logger.Error(message)
	case LogDebug:
		o.logger.Debug(message)
	default:
		o.logger.Notice(message)
	}
}

// OnControllerReady logs controller initialization
func (o *LoggingObserver) OnControllerReady(controller string, event crossroad.Event) {
	o.log(LogInfo, fmt.Sprintf("Traffic light mini-controller %s: Initialization complete. I am ready.", controller))
}

// OnStateEnter logs the switch to green
func (o *LoggingObserver) OnStateEnter(controller string, phase crossroad.Phase, event crossroad.Event) {
	if phase != crossroad.PhaseGreen {
		return
	}

	o.log(LogInfo, fmt.Sprintf("The traffic lights %s have changed to green.", controller))

	if event != nil {
		if interval, ok := event.GetMetadata()["green_interval"].(time.Duration); ok {
			o.log(LogDebug, fmt.Sprintf("controller %s stays green for %s", controller, interval))
		}
	}
}

// OnTransition logs the switch to red and the hand-off
func (o *LoggingObserver) OnTransition(controller string, from crossroad.Phase, to crossroad.Phase, event crossroad.Event) {
	switch to {
	case crossroad.PhaseAllRed:
		o.log(LogInfo, fmt.Sprintf("The traffic lights %s will change to red now.", controller))
	case crossroad.PhaseAwaitingTurn:
		o.log(LogDebug, fmt.Sprintf("controller %s handed over to the next light", controller))
	}
}

// OnVehicleArrived logs vehicle arrivals
func (o *LoggingObserver) OnVehicleArrived(vehicle crossroad.Vehicle, event crossroad.Event) {
	o.log(LogInfo, fmt.Sprintf("Vehicle %s has arrived at the intersection.", vehicle))
}

// OnVehicleCrossing logs vehicles entering the intersection
func (o *LoggingObserver) OnVehicleCrossing(vehicle crossroad.Vehicle, event crossroad.Event) {
	o.log(LogInfo, fmt.Sprintf("Vehicle %s is proceeding through the intersection.", vehicle))
}

// OnError logs errors
func (o *LoggingObserver) OnError(err error, event crossroad.Event) {
	o.log(LogError, err.Error())
}

// OnSimulationStarted logs the run identifier
func (o *LoggingObserver) OnSimulationStarted(event crossroad.Event) {
	o.log(LogDebug, fmt.Sprintf("simulation %v started", event.GetData()))
}

// OnSimulationStopped logs the shutdown message
func (o *LoggingObserver) OnSimulationStopped(event crossroad.Event) {
	if report, ok := event.GetData().(*crossroad.Report); ok {
		o.log(LogDebug, fmt.Sprintf(
			"simulation %s: %d/%d vehicles crossed in %s", report.ID, report.Crossed, report.Spawned, report.Duration.Round(time.Millisecond),
		))
	}
	o.log(LogInfo, "Main thread: There are no more vehicles to serve. The simulation will end now.")
}
