package component

type CollisionLayer int

const (
	// LayerSolid blocks from every side.
	LayerSolid CollisionLayer = iota
	// LayerOneWay only blocks a body landing on its top edge.
	LayerOneWay
)

func (l CollisionLayer) String() string {
	switch l {
	case LayerSolid:
		return "solid"
	case LayerOneWay:
		return "one_way"
	}
	return "unknown"
}

type Collider struct {
	Layer CollisionLayer
}

var ColliderComponent = NewComponent[Collider]()
