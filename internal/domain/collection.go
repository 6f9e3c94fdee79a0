package domain

// Collection is the resolved pairing of a boarding platform and the stop
// position it physically corresponds to. At least one side is populated.
// Both references point into the caller-owned record set.
type Collection struct {
	Platform *BusStop
	Stop     *BusStop
}
