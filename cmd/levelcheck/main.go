// Command levelcheck validates level files and reports what they build.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/savematter/ecs"
	"github.com/milk9111/savematter/ecs/component"
	"github.com/milk9111/savematter/ecs/entity"
	"github.com/milk9111/savematter/levels"
	"github.com/milk9111/savematter/prefabs"
	"github.com/milk9111/savematter/timer"
)

var (
	buildFlag   bool
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "levelcheck [level id or file ...]",
	Short: "Validate level files",
	Long:  "levelcheck validates embedded levels by id, or level JSON files by path. With no arguments every embedded level is checked.",
	RunE:  run,
}

func init() {
	rootCmd.Flags().BoolVarP(&buildFlag, "build", "b", false, "also build each level into a world")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "log every level, not only failures")
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "levelcheck"})
	if verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}

	if len(args) == 0 {
		for _, id := range levels.IDs() {
			args = append(args, strconv.Itoa(id))
		}
	}

	var bundle *prefabs.Bundle
	if buildFlag {
		b, err := prefabs.LoadBundle()
		if err != nil {
			return fmt.Errorf("load prefabs: %w", err)
		}
		bundle = b
		logger.Debug("prefabs loaded", "items", b.Effects.Kinds())
	}

	failed := 0
	for _, arg := range args {
		lvl, err := load(arg)
		if err != nil {
			logger.Error("invalid", "level", arg, "error", err)
			failed++
			continue
		}
		w, h := lvl.PixelSize()
		logger.Debug("valid", "level", arg, "name", lvl.Name, "size", fmt.Sprintf("%.0fx%.0f", w, h), "entities", len(lvl.Entities))

		if bundle == nil {
			continue
		}
		summary, err := build(lvl, bundle)
		if err != nil {
			logger.Error("build failed", "level", arg, "error", err)
			failed++
			continue
		}
		fmt.Printf("%s %q: %s\n", arg, lvl.Name, summary)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d levels failed", failed, len(args))
	}
	fmt.Printf("%d levels ok\n", len(args))
	return nil
}

func load(arg string) (*levels.Level, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return levels.Load(id)
	}
	return levels.LoadFile(arg)
}

func build(lvl *levels.Level, bundle *prefabs.Bundle) (string, error) {
	w := ecs.NewWorld()
	ctx := &entity.Context{Bundle: bundle, Clock: timer.NewSimClock()}
	if _, err := entity.BuildLevel(w, lvl, ctx); err != nil {
		return "", err
	}

	counts := []struct {
		name string
		kind component.Kind
	}{
		{"colliders", component.ColliderComponent.Kind()},
		{"hazards", component.DamageComponent.Kind()},
		{"movers", component.MovingPlatformComponent.Kind()},
		{"orbiters", component.OrbitComponent.Kind()},
		{"patrols", component.PatrolComponent.Kind()},
		{"turrets", component.TurretComponent.Kind()},
		{"pickups", component.PickupComponent.Kind()},
		{"goals", component.GoalComponent.Kind()},
	}
	parts := make([]string, 0, len(counts)+1)
	parts = append(parts, fmt.Sprintf("%d entities", w.Count()))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%d %s", len(w.Query(c.kind)), c.name))
	}
	return strings.Join(parts, ", "), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
