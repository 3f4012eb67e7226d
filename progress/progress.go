// Package progress holds the run-wide state that survives level reloads:
// health, coins and which levels are unlocked.
package progress

const (
	StartingHealth = 5
	// CoinsPerHealth coins are traded for one health as soon as they are
	// collected.
	CoinsPerHealth = 100
)

// Observer is notified after health or coins change, for HUD refreshes.
type Observer interface {
	HealthChanged(health int)
	CoinsChanged(coins int)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Health func(int)
	Coins  func(int)
}

func (o ObserverFuncs) HealthChanged(v int) {
	if o.Health != nil {
		o.Health(v)
	}
}

func (o ObserverFuncs) CoinsChanged(v int) {
	if o.Coins != nil {
		o.Coins(v)
	}
}

// State is mutated only through its setters so observers never miss a
// change.
type State struct {
	health        int
	coins         int
	unlockedLevel int
	currentLevel  int
	observers     []subscription
	nextID        int
}

type subscription struct {
	id int
	o  Observer
}

func New() *State {
	return &State{health: StartingHealth}
}

func (s *State) Health() int { return s.health }
func (s *State) Coins() int  { return s.coins }

func (s *State) SetHealth(v int) {
	s.health = v
	for _, sub := range s.observers {
		sub.o.HealthChanged(v)
	}
}

// SetCoins stores v, converting every full CoinsPerHealth into one health.
func (s *State) SetCoins(v int) {
	for v >= CoinsPerHealth {
		v -= CoinsPerHealth
		s.SetHealth(s.health + 1)
	}
	s.coins = v
	for _, sub := range s.observers {
		sub.o.CoinsChanged(v)
	}
}

// Alive reports whether the run can continue.
func (s *State) Alive() bool {
	return s.health > 0
}

func (s *State) UnlockedLevel() int { return s.unlockedLevel }
func (s *State) CurrentLevel() int  { return s.currentLevel }

// Unlock raises the unlocked level; it never goes down.
func (s *State) Unlock(level int) {
	if level > s.unlockedLevel {
		s.unlockedLevel = level
	}
}

func (s *State) SetCurrentLevel(level int) {
	s.currentLevel = level
}

// Subscribe registers o and returns a function that removes it again.
func (s *State) Subscribe(o Observer) func() {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, o: o})
	return func() {
		for i, sub := range s.observers {
			if sub.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Snapshot is the persisted form of State.
type Snapshot struct {
	Health        int `msgpack:"health"`
	Coins         int `msgpack:"coins"`
	UnlockedLevel int `msgpack:"unlocked_level"`
	CurrentLevel  int `msgpack:"current_level"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Health:        s.health,
		Coins:         s.coins,
		UnlockedLevel: s.unlockedLevel,
		CurrentLevel:  s.currentLevel,
	}
}

// Restore replaces the state with snap and notifies observers.
func (s *State) Restore(snap Snapshot) {
	s.unlockedLevel = snap.UnlockedLevel
	s.currentLevel = snap.CurrentLevel
	s.SetHealth(snap.Health)
	s.SetCoins(snap.Coins)
}
