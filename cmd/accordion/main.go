// Accordion is a configuration-driven terminal accordion with pinnable panels.
//
// It reads a YAML or TOML document describing a stack of panels, mounts each
// panel's content provider, and lets the user open, close and pin panels from
// the keyboard. At most one unpinned panel is open at a time.
//
// Usage:
//
//	accordion [command] [flags]
//
// Running without arguments launches the interactive accordion using the
// document at --config, the default config path, or the built-in demo.
// See 'accordion --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/accordion/internal/accordion"
	"github.com/muurk/accordion/internal/config"
	"github.com/muurk/accordion/internal/logging"
	"github.com/muurk/accordion/internal/store"
	"github.com/muurk/accordion/internal/telemetry"
	"github.com/muurk/accordion/internal/version"
)

// demoSource labels the built-in document in headers and the status line.
const demoSource = "built-in demo"

// Global flags
var (
	configPath string
	logLevel   string
	logFile    string
	watch      bool
	useDemo    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "accordion",
	Short: "Configuration-driven accordion with pinnable panels",
	Long: `A terminal accordion driven by a configuration document.

Each panel names a registered content component and the properties it reads
from the shared host state. Opening a panel closes every other unpinned panel;
pinned panels stay open until they are unpinned or closed.

If no command is specified, the interactive accordion launches.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runAccordion,
}

func initLogging(cmd *cobra.Command, args []string) error {
	file := logFile
	// The interactive UI owns the terminal, so its logs go to a file.
	if file == "" && os.Getenv(logging.LogFileEnvVar) == "" && ownsTerminal(cmd) {
		file = logging.DefaultLogFile()
	}
	return logging.Initialize(logLevel, file)
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentPreRunE = initLogging

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config document (YAML or TOML; default: "+defaultPathHint()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: "+logging.DefaultLogFile()+" for the interactive UI)")
	rootCmd.PersistentFlags().BoolVar(&useDemo, "demo", false, "Use the built-in demo document")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the accordion when the config file changes")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("accordion %s\n", version.Full())
	},
}

func ownsTerminal(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == serveCmd
}

func defaultPathHint() string {
	path, err := config.GetConfigPath()
	if err != nil {
		return "the OS config directory"
	}
	return path
}

// loadConfig resolves the document to mount. It returns the config, a label
// for display, and the file path when the document came from disk.
func loadConfig() (*config.AccordionConfig, string, string, error) {
	if useDemo {
		return config.Demo(), demoSource, "", nil
	}

	path := configPath
	explicit := path != ""
	if !explicit {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return nil, "", "", fmt.Errorf("failed to get config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logging.Info("No config document found, using demo", zap.String("path", path))
			return config.Demo(), demoSource, "", nil
		}
		return nil, "", "", err
	}
	logging.LogConfigLoaded(path, len(cfg.Layers))
	return cfg, path, path, nil
}

// session is a mounted accordion ready to run.
type session struct {
	ctx     context.Context
	model   accordion.Model
	program *tea.Program
	source  string
	path    string
	cleanup []func()
}

// newSession loads the config, sets up tracing and builds the program. The
// caller must call close.
func newSession(st *store.Store) (*session, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	s := &session{ctx: ctx, cleanup: []func(){stop}}

	cfg, source, path, err := loadConfig()
	if err != nil {
		s.close()
		return nil, err
	}
	s.source, s.path = source, path

	tracer, err := telemetry.Setup(ctx)
	if err != nil {
		logging.Warn("Tracing disabled", zap.Error(err))
	}
	s.cleanup = append(s.cleanup, func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			logging.Warn("Failed to flush traces", zap.Error(err))
		}
	})

	s.model, err = accordion.New(accordion.Options{
		Config:  cfg,
		Source:  source,
		Store:   st,
		Tracer:  tracer,
		Context: ctx,
	})
	if err != nil {
		s.close()
		return nil, err
	}

	s.program = tea.NewProgram(s.model, tea.WithAltScreen(), tea.WithContext(ctx))
	return s, nil
}

// startWatcher forwards config changes to the running program.
func (s *session) startWatcher() error {
	if s.path == "" {
		return fmt.Errorf("--watch needs a config file, not the %s", demoSource)
	}
	w, err := config.NewWatcher(s.path)
	if err != nil {
		return err
	}
	w.OnChange(func(cfg *config.AccordionConfig) {
		logging.LogConfigLoaded(s.path, len(cfg.Layers))
		s.program.Send(accordion.ReloadMsg{Config: cfg, Path: s.path})
	})
	w.OnError(func(err error) {
		s.program.Send(accordion.ErrorMsg{Err: err})
	})
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}
	s.cleanup = append(s.cleanup, w.Stop)
	return nil
}

func (s *session) run() error {
	if _, err := s.program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("accordion error: %w", err)
	}
	return nil
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
	s.cleanup = nil
}

func runAccordion(cmd *cobra.Command, args []string) error {
	s, err := newSession(nil)
	if err != nil {
		return err
	}
	defer s.close()

	if watch {
		if err := s.startWatcher(); err != nil {
			return err
		}
	}
	return s.run()
}
