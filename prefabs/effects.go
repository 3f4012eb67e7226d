package prefabs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ErrUnknownItem is returned when an effect is requested for an item
// that has no compiled script.
var ErrUnknownItem = errors.New("prefabs: unknown item")

// ItemEffects runs the tengo effect script of each pickup kind against the
// player's health and coins.
type ItemEffects struct {
	compiled map[string]*tengo.Compiled
}

func NewItemEffects(spec *ItemsSpec) (*ItemEffects, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil items spec", ErrInvalidSpec)
	}
	fx := &ItemEffects{compiled: make(map[string]*tengo.Compiled, len(spec.Items))}
	for kind, item := range spec.Items {
		src := []byte(item.Effect)
		if item.Script != "" {
			b, err := LoadScript(item.Script)
			if err != nil {
				return nil, fmt.Errorf("prefabs: item %s: %w", kind, err)
			}
			src = b
		}
		if len(src) == 0 {
			return nil, fmt.Errorf("%w: item %s has no effect", ErrInvalidSpec, kind)
		}

		script := tengo.NewScript(src)
		_ = script.Add("health", 0)
		_ = script.Add("coins", 0)
		script.SetImports(stdlib.GetModuleMap("math"))

		compiled, err := script.Compile()
		if err != nil {
			return nil, fmt.Errorf("prefabs: compile item %s: %w", kind, err)
		}
		fx.compiled[kind] = compiled
	}
	return fx, nil
}

func (fx *ItemEffects) Has(kind string) bool {
	_, ok := fx.compiled[kind]
	return ok
}

// Kinds lists the known item kinds in sorted order.
func (fx *ItemEffects) Kinds() []string {
	out := make([]string, 0, len(fx.compiled))
	for k := range fx.compiled {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Apply returns health and coins after the item's effect ran.
func (fx *ItemEffects) Apply(kind string, health, coins int) (int, int, error) {
	base, ok := fx.compiled[kind]
	if !ok {
		return health, coins, fmt.Errorf("%w: %q", ErrUnknownItem, kind)
	}
	c := base.Clone()
	if err := c.Set("health", health); err != nil {
		return health, coins, err
	}
	if err := c.Set("coins", coins); err != nil {
		return health, coins, err
	}
	if err := c.Run(); err != nil {
		return health, coins, fmt.Errorf("prefabs: run item %s: %w", kind, err)
	}
	return c.Get("health").Int(), c.Get("coins").Int(), nil
}
