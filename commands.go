package main

import (
	"fmt"
	"io"
	"soundboard/audio"
	"soundboard/board"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	boardStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4caf50"))
	posStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	fileStyle  = lipgloss.NewStyle().Faint(true)
)

// listCmd prints every board with its slots
func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List soundboards and their slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards := c.openBoards(nil)
			printBoards(cmd.OutOrStdout(), boards)
			return nil
		},
	}
}

func printBoards(w io.Writer, boards *board.Manager) {
	names := boards.Boards()
	if len(names) == 0 {
		fmt.Fprintln(w, "No soundboards found.")
		return
	}

	for _, name := range names {
		slots, _ := boards.Board(name)
		fmt.Fprintf(w, "%s (%d sounds)\n", boardStyle.Render(name), len(slots))
		for _, slot := range slots {
			fmt.Fprintf(w, "%s  %-16s %s\n",
				posStyle.Render(strconv.Itoa(slot.Pos)),
				slot.Name,
				fileStyle.Render(slot.File))
		}
	}
}

// newCmd creates a board
func (c *cli) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new soundboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boards := c.openBoards(nil)
			name, err := boards.CreateBoard(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Soundboard '%s' created successfully!\n", name)
			return nil
		},
	}
}

// assignCmd binds a sound file to a slot
func (c *cli) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <board> <position> <file>",
		Short: "Assign a sound file to a slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			boards := c.openBoards(nil)
			if err := boards.SelectBoard(args[0]); err != nil {
				return err
			}
			if err := boards.AssignSlot(pos, args[2]); err != nil {
				return err
			}
			slot, _ := boards.Slot(pos)
			fmt.Fprintf(cmd.OutOrStdout(), "Slot %d on '%s' now plays %s\n", pos, args[0], slot.Label)
			return nil
		},
	}
}

// clearCmd unbinds a slot
func (c *cli) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <board> <position>",
		Short: "Remove the sound from a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			boards := c.openBoards(nil)
			if err := boards.SelectBoard(args[0]); err != nil {
				return err
			}
			if err := boards.ClearSlot(pos); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Slot %d on '%s' cleared\n", pos, args[0])
			return nil
		},
	}
}

// playCmd plays a slot and waits for it to finish
func (c *cli) playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <board> <position>",
		Short: "Play a slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			boards := c.openBoards(nil)
			if err := boards.SelectBoard(args[0]); err != nil {
				return err
			}
			slot, err := boards.Slot(pos)
			if err != nil {
				return err
			}
			if !slot.Assigned() {
				return fmt.Errorf("slot %d on '%s' is empty", pos, args[0])
			}

			engine, err := audio.NewEngine(c.logger)
			if err != nil {
				return err
			}
			defer engine.Close()
			boards.SetPlayer(engine)

			fmt.Fprintf(cmd.OutOrStdout(), "Playing %s...\n", slot.Label)
			if err := boards.Play(pos); err != nil {
				return err
			}
			engine.Wait()
			return nil
		},
	}
}

// themeCmd toggles between the dark and light theme
func (c *cli) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between the dark and light theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards := c.openBoards(nil)
			theme, err := boards.ToggleTheme()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme is now %s\n", theme)
			return nil
		},
	}
}

// fixPathsCmd normalizes stored file paths
func (c *cli) fixPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fix-paths",
		Short: "Normalize the file paths stored in every board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards := c.openBoards(nil)
			fixed, err := boards.FixPaths()
			if err != nil {
				return err
			}
			if fixed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No path issues found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fixed %d sounds with path issues.\n", fixed)
			return nil
		},
	}
}

func parsePosition(arg string) (int, error) {
	pos, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid slot position: %s", arg)
	}
	return pos, nil
}
