package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/savematter/storage"
)

var (
	levelFlag   int
	debugFlag   bool
	savePath    string
	slotFlag    int
	watchFlag   bool
	seedFlag    uint64
	muteFlag    bool
	monitorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "savematter",
	Short: "A side-scrolling platformer",
	Long:  "savematter runs the platformer. Progress is saved per slot in a SQLite database.",
	RunE:  runGame,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save in the selected slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(savePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Delete(slotFlag); err != nil {
			return err
		}
		fmt.Printf("slot %d cleared\n", slotFlag)
		return nil
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List saved slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storage.Open(savePath)
		if err != nil {
			return err
		}
		defer store.Close()
		slots, err := store.Slots()
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			fmt.Println("no saves")
			return nil
		}
		for _, s := range slots {
			fmt.Printf("slot %d  level %d  unlocked %d  health %d  coins %d  %s\n",
				s.Slot, s.Snapshot.CurrentLevel, s.Snapshot.UnlockedLevel,
				s.Snapshot.Health, s.Snapshot.Coins, s.UpdatedAt.Format(time.DateTime))
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&savePath, "save", "~/.savematter/saves.db", "path to the save database")
	rootCmd.PersistentFlags().IntVar(&slotFlag, "slot", 1, "save slot")
	rootCmd.Flags().IntVar(&levelFlag, "level", 0, "start at this level instead of the saved one")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "enable debug logging and hitbox drawing")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "hot reload prefabs/*.yaml and scripts from disk")
	rootCmd.Flags().Uint64Var(&seedFlag, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.Flags().BoolVar(&muteFlag, "mute", false, "disable sound")
	rootCmd.Flags().BoolVarP(&monitorFlag, "monitor", "m", false, "use base monitor instead of primary")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(slotsCmd)
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "savematter",
	})
	if debugFlag {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := storage.Open(savePath)
	if err != nil {
		return err
	}
	defer store.Close()

	seed := seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	game, err := NewGame(GameOptions{
		Logger: logger,
		Store:  store,
		Slot:   slotFlag,
		Level:  levelFlag,
		Debug:  debugFlag,
		Watch:  watchFlag,
		Mute:   muteFlag,
		Seed:   seed,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	if monitorFlag {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(game.ScreenSize())
	ebiten.SetWindowTitle("savematter")

	return ebiten.RunGame(game)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
