package main

import (
	"fmt"
	"os"
	"soundboard/audio"
	"soundboard/board"
	"soundboard/storage"
	"soundboard/ui"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appID = "io.github.soundboard"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the persistent flags and the logger built from them
type cli struct {
	dataDir string
	verbose bool
	logger  *zap.Logger
}

// newRootCmd builds the command tree. Without a subcommand the GUI starts.
func newRootCmd() *cobra.Command {
	c := &cli{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "soundboard",
		Short: "Virtual Soundboard",
		Long: `Virtual Soundboard organizes sound files into named boards, each a grid
of slots. Click a slot to play its sound; right-click to clear it.

Run without arguments to open the window. The subcommands work on the same
data headless.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGUI()
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.dataDir, "data-dir", storage.DefaultDataPath(), "directory holding config.json and soundboards.json")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		c.listCmd(),
		c.newCmd(),
		c.assignCmd(),
		c.clearCmd(),
		c.playCmd(),
		c.themeCmd(),
		c.fixPathsCmd(),
	)
	return rootCmd
}

// initLogger builds the logger from the flags
func (c *cli) initLogger() error {
	config := zap.NewProductionConfig()
	if c.verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	c.logger = logger
	return nil
}

// openBoards loads settings and boards from the data directory
func (c *cli) openBoards(player board.Player) *board.Manager {
	store := storage.NewManager(c.dataDir, c.logger)
	boards := board.NewManager(store, player, c.logger)
	boards.Load()
	return boards
}

// runGUI opens the main window and blocks until it is closed
func (c *cli) runGUI() error {
	c.logger.Info("Starting soundboard", zap.String("data_dir", c.dataDir))

	boards := c.openBoards(nil)

	// The window stays usable without sound; playing reports the problem
	engine, err := audio.NewEngine(c.logger)
	if err != nil {
		c.logger.Warn("Audio engine unavailable", zap.Error(err))
	} else {
		boards.SetPlayer(engine)
		defer engine.Close()
	}

	mw := ui.NewMainWindow(app.NewWithID(appID), boards, c.logger)
	mw.ShowAndRun()
	return nil
}
