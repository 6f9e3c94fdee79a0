package domain

import "github.com/paulmach/orb"

// PublicTransport is the closed category of a surveyed bus stop element.
type PublicTransport uint8

const (
	// Platform is a boarding location for passengers.
	Platform PublicTransport = iota
	// StopPosition is the point on the way where the vehicle halts.
	StopPosition
)

func (t PublicTransport) String() string {
	switch t {
	case Platform:
		return "platform"
	case StopPosition:
		return "stop_position"
	default:
		return "unknown"
	}
}

// BusStop is one raw surveyed bus stop element.
// Records are immutable after creation; the resolver references them
// without copying, so callers must not mutate them mid-run.
type BusStop struct {
	ID        int64
	Position  orb.Point // lon, lat in degrees
	Name      string    // group label, "" means unnamed
	Explicit  bool      // directly survey-tagged as a bus stop
	Transport PublicTransport
}
