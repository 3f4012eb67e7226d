package component

import "github.com/milk9111/savematter/common"

// LevelBounds stores the world-space bounds of the current level.
type LevelBounds struct {
	Width       float64
	Height      float64
	TopLimit    float64
	HorizonLine float64
}

// Goal is the level's finish area.
type Goal struct {
	Rect   common.Rect
	Unlock int
}

var (
	LevelBoundsComponent = NewComponent[LevelBounds]()
	GoalComponent        = NewComponent[Goal]()
)
