package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// MeleeTargetTag marks bodies the player's attack can turn around.
type MeleeTargetTag struct{}

var MeleeTargetTagComponent = NewComponent[MeleeTargetTag]()
