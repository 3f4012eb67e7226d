package component

// Pickup is a collectible whose effect is looked up by Kind.
type Pickup struct {
	Kind string
}

var PickupComponent = NewComponent[Pickup]()
