package crossroad

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/anggasct/crossroad/pkg/syncutil"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Report summarizes a finished run
type Report struct {
	ID       string
	Spawned  int
	Crossed  int
	Duration time.Duration
}

// Option configures a Simulation
type Option func(*Simulation)

// WithSource replaces the default random source
func WithSource(source Source) Option {
	return func(s *Simulation) {
		s.source = source
	}
}

// WithObserver registers an observer before the run starts
func WithObserver(observer Observer) Option {
	return func(s *Simulation) {
		s.observers.AddObserver(observer)
	}
}

// Simulation wires the controller ring and drives a single run. Controllers
// are stored in ring order and next holds the index of each one's successor
type Simulation struct {
	id          string
	config      *Config
	controllers []*LightController
	next        []int
	lookup      map[Heading]int
	ready       *syncutil.Barrier
	source      Source
	observers   *ObserverManager
	started     atomic.Bool
}

// NewSimulation validates config and builds the immutable controller ring
func NewSimulation(config *Config, opts ...Option) (*Simulation, error) {
	if config == nil {
		return nil, NewConfigurationError("Simulation", "no configuration given")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		id:          uuid.New().String(),
		config:      config,
		controllers: make([]*LightController, len(Groups)),
		next:        make([]int, len(Groups)),
		lookup:      make(map[Heading]int),
		ready:       syncutil.NewBarrier(len(Groups) + 1),
		observers:   NewObserverManager(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.source == nil {
		if config.Seed != nil {
			s.source = NewSource(*config.Seed)
		} else {
			s.source = DefaultSource()
		}
	}

	for i, group := range Groups {
		s.controllers[i] = newLightController(group, config, s.ready, s.observers)
		for _, heading := range GroupHeadings(group) {
			s.lookup[heading] = i
		}
	}

	for i := range s.controllers {
		s.next[i] = (i + 1) % len(s.controllers)
		s.controllers[i].next = s.controllers[s.next[i]].wake
	}

	return s, nil
}

// ID returns the unique run identifier
func (s *Simulation) ID() string {
	return s.id
}

// Controllers returns the controllers in ring order
func (s *Simulation) Controllers() []*LightController {
	return append([]*LightController(nil), s.controllers...)
}

// Next returns the ring index of the controller following index i
func (s *Simulation) Next(i int) int {
	return s.next[i]
}

// ControllerFor returns the controller serving heading
func (s *Simulation) ControllerFor(heading Heading) (*LightController, error) {
	idx, ok := s.lookup[heading]
	if !ok {
		return nil, NewHeadingError(heading.String())
	}
	return s.controllers[idx], nil
}

// AddObserver registers an observer. It must be called before Run
func (s *Simulation) AddObserver(observer Observer) {
	s.observers.AddObserver(observer)
}

// Run starts the ring, spawns every vehicle, waits for all of them to cross
// and then cancels and joins the controllers. A Simulation runs once
func (s *Simulation) Run(ctx context.Context) (*Report, error) {
	if !s.started.CompareAndSwap(false, true) {
		return nil, NewAlreadyStartedError("Run")
	}

	var start = time.Now()
	var report = &Report{ID: s.id}

	s.observers.NotifySimulationStarted(NewEvent(EventStart, s.id))

	ringCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ring, ringCtx := errgroup.WithContext(ringCtx)

	for _, controller := range s.controllers {
		controller := controller
		ring.Go(func() error {
			if err := controller.Run(ringCtx); err != nil && ringCtx.Err() == nil {
				err = NewControllerError(controller.Name(), controller.Phase().String(), err)
				s.observers.NotifyError(err, NewEvent(EventStop, controller.Name()))
				return err
			}
			return nil
		})
	}

	s.ready.Wait()
	s.controllers[0].wake.Signal(nil)

	spawnErr := s.spawn(ringCtx, report)

	cancel()
	ringErr := ring.Wait()

	report.Duration = time.Since(start)
	s.observers.NotifySimulationStopped(NewEvent(EventStop, report))

	if err := ctx.Err(); err != nil {
		return report, err
	}

	if ringErr != nil {
		return report, ringErr
	}

	return report, spawnErr
}

// spawn creates the vehicle actors, spacing same-heading arrivals by at least
// one time unit, and joins them all
func (s *Simulation) spawn(ctx context.Context, report *Report) error {
	var vehicles errgroup.Group
	var crossed atomic.Int64
	var counts = make(map[Heading]int)
	var last = make(map[Heading]time.Time)
	var err error

	for i := 0; i < s.config.Vehicles; i++ {
		heading := s.source.Heading()

		controller, lookupErr := s.ControllerFor(heading)
		if lookupErr != nil {
			err = lookupErr
			break
		}

		vehicle := Vehicle{ID: counts[heading], Heading: heading}
		counts[heading]++

		previous, seen := last[heading]
		recent := seen && time.Since(previous) <= s.config.Units(1)

		if err = sleep(ctx, s.config.Units(spawnDelay(s.source, s.config.MaxArrivalGap, recent))); err != nil {
			break
		}
		last[heading] = time.Now()

		actor, actorErr := newVehicleActor(vehicle, controller, s.observers)
		if actorErr != nil {
			err = actorErr
			break
		}

		report.Spawned++
		vehicles.Go(func() error {
			if err := actor.Run(ctx); err != nil {
				return err
			}
			crossed.Add(1)
			return nil
		})
	}

	waitErr := vehicles.Wait()
	report.Crossed = int(crossed.Load())

	if err != nil {
		return err
	}
	return waitErr
}
