package prefabs

import "fmt"

// Bundle holds every tuning file a level needs.
type Bundle struct {
	Player  *PlayerSpec
	Enemies *EnemiesSpec
	Items   *ItemsSpec
	World   *WorldSpec
	Effects *ItemEffects
}

func LoadBundle() (*Bundle, error) {
	player, err := LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemiesSpec()
	if err != nil {
		return nil, err
	}
	items, err := LoadItemsSpec()
	if err != nil {
		return nil, err
	}
	world, err := LoadWorldSpec()
	if err != nil {
		return nil, err
	}
	effects, err := NewItemEffects(items)
	if err != nil {
		return nil, err
	}
	for kind := range items.Items {
		if !effects.Has(kind) {
			return nil, fmt.Errorf("%w: item %s did not compile", ErrInvalidSpec, kind)
		}
	}
	return &Bundle{Player: player, Enemies: enemies, Items: items, World: world, Effects: effects}, nil
}
