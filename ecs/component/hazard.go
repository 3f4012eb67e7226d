package component

// Damage hurts the player on overlap. Deflectable sources are destroyed when
// they land a hit.
type Damage struct {
	Deflectable bool
}

var DamageComponent = NewComponent[Damage]()
