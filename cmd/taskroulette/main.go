package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kalenobrien15/taskroulette/internal/session"
	"github.com/kalenobrien15/taskroulette/internal/storage"
	"github.com/kalenobrien15/taskroulette/internal/update"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cfg := update.RuntimeConfigFromEnv()

	rootCmd := &cobra.Command{
		Use:     "taskroulette",
		Short:   "Spin a roulette wheel to pick your next task",
		Long:    "taskroulette keeps a list of tasks and picks the next one for you with an animated roulette spin. Completing tasks earns credits; skipping a revealed task spends them.",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cfg)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sqlite state file")
	rootCmd.Flags().BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable the audio tick")

	rootCmd.AddCommand(newAddCmd(&cfg), newHistoryCmd(&cfg), newResetCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTUI(cfg update.RuntimeConfig) error {
	store, degraded := openStore(cfg.DBPath)
	defer store.Close()

	sess := session.New(store, cfg.SessionConfig())
	model := update.NewModel(sess, cfg)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if degraded {
		// Surface the fallback once the UI is up instead of dying on start.
		go program.Send(update.SetStatusMsg{
			Text:    "state file unavailable, running without persistence",
			IsError: true,
		})
	}
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("taskroulette failed: %w", err)
	}
	return nil
}

// openStore opens the sqlite state file, creating its directory on first
// run. Any failure falls back to an in-memory store so the app still works,
// just without persistence.
func openStore(path string) (storage.Store, bool) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return storage.NewMemoryStore(), true
	}
	store, err := storage.OpenSQLite(path)
	if err != nil {
		return storage.NewMemoryStore(), true
	}
	return store, false
}

func newAddCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task title>",
		Short: "Add a task to the wheel without opening the UI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, degraded := openStore(cfg.DBPath)
			defer store.Close()
			if degraded {
				return fmt.Errorf("cannot open state file at %s", cfg.DBPath)
			}

			sess := session.New(store, cfg.SessionConfig())
			title := strings.Join(args, " ")
			if err := sess.AddTask(title); err != nil {
				return err
			}
			color.Green("added: %s (%d on the wheel)", title, len(sess.Tasks()))
			return nil
		},
	}
}

func newHistoryCmd(cfg *update.RuntimeConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print completed tasks, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, degraded := openStore(cfg.DBPath)
			defer store.Close()
			if degraded {
				return fmt.Errorf("cannot open state file at %s", cfg.DBPath)
			}

			sess := session.New(store, cfg.SessionConfig())
			history := sess.History()
			if len(history) == 0 {
				color.Yellow("nothing completed yet")
				return nil
			}
			bold := color.New(color.Bold)
			bold.Printf("completed: %d | streak: %d | credits: %d\n", len(history), sess.Streak(), sess.Credits())
			for i, task := range history {
				fmt.Printf("%3d. %s\n", i+1, task)
			}
			return nil
		},
	}
}

func newResetCmd(cfg *update.RuntimeConfig) *cobra.Command {
	var keepTasks bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe history, streak and credits back to a fresh session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, degraded := openStore(cfg.DBPath)
			defer store.Close()
			if degraded {
				return fmt.Errorf("cannot open state file at %s", cfg.DBPath)
			}

			sess := session.New(store, cfg.SessionConfig())
			sess.ClearHistory()
			if !keepTasks {
				sess.ClearAllTasks()
			}
			if err := sess.ResetCredits(); err != nil {
				return err
			}
			color.Green("session reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&keepTasks, "keep-tasks", false, "keep the task list, reset only history and credits")
	return cmd
}
