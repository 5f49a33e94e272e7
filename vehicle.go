package crossroad

import (
	"context"
	"fmt"
	"time"

	"github.com/anggasct/crossroad/pkg/syncutil"
)

// Vehicle is a single car passing through the intersection once
type Vehicle struct {
	// ID is unique among vehicles sharing a heading
	ID      int
	Heading Heading
}

func (v Vehicle) String() string {
	return fmt.Sprintf("%d %s", v.ID, v.Heading)
}

type vehicleActor struct {
	vehicle   Vehicle
	entry     *syncutil.Mailbox
	gap       time.Duration
	observers *ObserverManager
}

func newVehicleActor(vehicle Vehicle, controller *LightController, observers *ObserverManager) (*vehicleActor, error) {
	entry, ok := controller.Entry(vehicle.Heading.Lane())

	if !ok {
		return nil, NewHeadingError(vehicle.Heading.String())
	}

	return &vehicleActor{
		vehicle:   vehicle,
		entry:     entry,
		gap:       controller.IntersectionGap(),
		observers: observers,
	}, nil
}

func (a *vehicleActor) event(name string) Event {
	return NewEventWithMetadata(name, a.vehicle, map[string]any{"lane": a.vehicle.Heading.Lane().String()})
}

// Run waits for permission on the lane, holds the lane for the intersection
// gap and leaves. There is no retry
func (a *vehicleActor) Run(ctx context.Context) error {
	a.observers.NotifyVehicleArrived(a.vehicle, a.event(EventArrive))

	if err := a.entry.WaitLock(ctx); err != nil {
		return err
	}
	defer a.entry.Unlock()

	a.observers.NotifyVehicleCrossing(a.vehicle, a.event(EventCross))

	return sleep(ctx, a.gap)
}
