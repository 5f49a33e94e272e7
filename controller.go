package crossroad

import (
	"context"
	"sync"
	"time"

	"github.com/anggasct/crossroad/pkg/syncutil"
)

// LightController cycles one light group through its phases. It owns a wake
// mailbox signalled by the previous controller in the ring and one entry
// mailbox per lane it serves
type LightController struct {
	id              [2]Heading
	name            string
	group           Group
	greenInterval   time.Duration
	allRed          time.Duration
	intersectionGap time.Duration

	wake  *syncutil.Mailbox
	entry map[Direction]*syncutil.Mailbox
	lanes []Direction
	next  *syncutil.Mailbox
	ready *syncutil.Barrier

	observers *ObserverManager

	mutex sync.RWMutex
	phase Phase
}

func newLightController(group Group, config *Config, ready *syncutil.Barrier, observers *ObserverManager) *LightController {
	id := groupIDs[group]

	c := &LightController{
		id:              id,
		name:            ControllerName(group),
		group:           group,
		greenInterval:   config.Units(float64(config.GreenInterval(group))),
		allRed:          config.Units(float64(config.AllRed)),
		intersectionGap: config.Units(float64(config.IntersectionGap)),
		wake:            syncutil.NewMailbox(),
		entry:           make(map[Direction]*syncutil.Mailbox, 2),
		ready:           ready,
		observers:       observers,
		phase:           PhaseAwaitingTurn,
	}

	for _, heading := range id {
		lane := heading.Lane()
		if _, ok := c.entry[lane]; !ok {
			c.entry[lane] = syncutil.NewMailbox()
			c.lanes = append(c.lanes, lane)
		}
	}

	return c
}

// Name returns the controller identifier, e.g. "(n2s, s2n)"
func (c *LightController) Name() string {
	return c.name
}

// ID returns the pair of headings identifying the controller
func (c *LightController) ID() [2]Heading {
	return c.id
}

// Group returns the light group the controller serves
func (c *LightController) Group() Group {
	return c.group
}

// Lanes returns the lanes the controller releases vehicles from
func (c *LightController) Lanes() []Direction {
	return append([]Direction(nil), c.lanes...)
}

// Phase returns the current phase
func (c *LightController) Phase() Phase {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.phase
}

// Entry returns the mailbox vehicles in lane wait on
func (c *LightController) Entry(lane Direction) (*syncutil.Mailbox, bool) {
	mbox, ok := c.entry[lane]
	return mbox, ok
}

// IntersectionGap is how long a vehicle occupies its lane while crossing
func (c *LightController) IntersectionGap() time.Duration {
	return c.intersectionGap
}

func (c *LightController) fire(event string) error {
	c.mutex.Lock()
	from := c.phase
	t, ok := FindTransition(from, event)
	if ok {
		c.phase = t.TargetPhase
	}
	c.mutex.Unlock()

	if !ok {
		return NewNoTransitionError(c.name, from, event)
	}

	metadata := map[string]any{"group": c.group.String()}
	if t.TargetPhase == PhaseGreen {
		metadata["green_interval"] = c.greenInterval
	}

	ev := NewEventWithMetadata(event, c.name, metadata)
	c.observers.NotifyStateExit(c.name, from, ev)
	c.observers.NotifyTransition(c.name, from, t.TargetPhase, ev)
	c.observers.NotifyStateEnter(c.name, t.TargetPhase, ev)
	return nil
}

// Run announces readiness, waits for the whole ring at the startup barrier and
// then cycles until ctx is cancelled. Cancellation returns ctx.Err()
func (c *LightController) Run(ctx context.Context) error {
	c.observers.NotifyControllerReady(c.name, NewEvent(EventReady, c.name))
	c.ready.Wait()

	for {
		if err := c.cycle(ctx); err != nil {
			return err
		}
	}
}

// cycle runs one AWAITING_TURN -> GREEN -> ALL_RED -> AWAITING_TURN round.
// The wake mailbox stays locked for the whole turn
func (c *LightController) cycle(ctx context.Context) error {
	if err := c.wake.WaitLock(ctx); err != nil {
		return err
	}
	defer c.wake.Unlock()

	if err := c.fire(EventTurn); err != nil {
		return err
	}

	err := c.green(ctx)

	for _, lane := range c.lanes {
		c.entry[lane].Retract()
	}

	if err != nil {
		return err
	}

	if err := c.fire(EventDeadline); err != nil {
		return err
	}

	if err := sleep(ctx, c.allRed); err != nil {
		return err
	}

	c.next.Signal(nil)

	return c.fire(EventHandoff)
}

// green offers one crossing per iteration to every lane until the red deadline
func (c *LightController) green(ctx context.Context) error {
	deadline := time.Now().Add(c.greenInterval)

	for time.Now().Before(deadline) {
		if err := c.offer(ctx, deadline); err != nil {
			return err
		}
	}

	return nil
}

// offer signals all lanes under one shared receipt and waits until a vehicle
// consumes it or the deadline passes
func (c *LightController) offer(ctx context.Context, deadline time.Time) error {
	receipt := syncutil.NewRefSemaphore(0)
	defer receipt.Release()

	for _, lane := range c.lanes {
		c.entry[lane].Signal(receipt)
	}

	if err := receipt.WaitUntil(ctx, deadline); err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
