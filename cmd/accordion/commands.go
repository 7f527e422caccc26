package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/accordion/internal/accordion"
	"github.com/muurk/accordion/internal/config"
	"github.com/muurk/accordion/internal/discovery"
	"github.com/muurk/accordion/internal/logging"
	"github.com/muurk/accordion/internal/provider"
	"github.com/muurk/accordion/internal/statesync"
	"github.com/muurk/accordion/internal/store"
	"github.com/muurk/accordion/internal/ui"
	"github.com/muurk/accordion/internal/version"
)

// Subcommand flags
var (
	serveHost      string
	servePort      int
	certPath       string
	keyPath        string
	advertise      bool
	scanTimeout    int
	summaryWidth   int
	initForce      bool
	errConfigCheck = errors.New("configuration check failed")
)

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(initCmd)
}

// validateCmd checks a config document without launching the UI
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a config document",
	Long: `Parse and validate a config document.

Every problem is reported at once: missing fields, duplicate panel ids and
defaultOpenItems or pinnedItems entries that name no panel. Component names
that are not registered are reported as warnings; they render as an inline
placeholder instead of failing the whole accordion.`,
	Example: `  # Validate the default document
  accordion validate

  # Validate a specific file
  accordion validate ./panels.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		configPath = args[0]
	}

	path := configPath
	if path == "" && !useDemo {
		path = defaultPathHint()
	}
	if useDemo {
		path = demoSource
	}
	fmt.Println(ui.NewHeader("Validate", "accordion validate", []ui.Param{
		{Key: "Config", Value: path},
	}).Render())
	fmt.Println()

	cfg, source, _, err := loadConfig()
	if err != nil {
		fmt.Println(ui.RenderFailure("Configuration invalid", err, []string{
			"Every panel needs an id, a name and a componentName",
			"Panel ids must be unique",
			"defaultOpenItems and pinnedItems may only name existing panel ids",
		}))
		return errConfigCheck
	}

	details := configDetails(cfg, source)
	if missing := unregisteredComponents(cfg, provider.DefaultRegistry()); len(missing) > 0 {
		fmt.Println(ui.RenderWarning("Configuration valid with unknown components", append(details, missing...)))
		return nil
	}
	fmt.Println(ui.RenderSuccess("Configuration valid", details))
	return nil
}

func configDetails(cfg *config.AccordionConfig, source string) []ui.Param {
	return []ui.Param{
		{Key: "Source", Value: source},
		{Key: "Panels", Value: fmt.Sprint(len(cfg.Layers))},
		{Key: "Default open", Value: joinOrDash(cfg.DefaultOpenItems)},
		{Key: "Pinned", Value: joinOrDash(cfg.PinnedItems)},
		{Key: "State names", Value: fmt.Sprint(len(cfg.State))},
	}
}

func unregisteredComponents(cfg *config.AccordionConfig, reg *provider.Registry) []ui.Param {
	var out []ui.Param
	for _, l := range cfg.Layers {
		if reg.Has(l.ComponentName) {
			continue
		}
		msg := "component not found: " + l.ComponentName
		if s := reg.Suggest(l.ComponentName); s != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", s)
		}
		out = append(out, ui.Param{Key: l.ID, Value: msg})
	}
	return out
}

func joinOrDash(ids []string) string {
	if len(ids) == 0 {
		return "-"
	}
	return strings.Join(ids, ", ")
}

// summaryCmd prints one render pass without launching the UI
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print each panel's state and summary",
	Long: `Mount the accordion once and print every panel in configured order with
its open and pinned state. Closed panels show the summary their component
reports; open panels show how many lines they render.`,
	Example: `  accordion summary --config ./panels.yaml`,
	Args:    cobra.NoArgs,
	RunE:    runSummary,
}

func init() {
	summaryCmd.Flags().IntVar(&summaryWidth, "width", 0, "Render width (default: terminal width)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, source, _, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := accordion.New(accordion.Options{Config: cfg, Source: source})
	if err != nil {
		return err
	}

	width := summaryWidth
	if width <= 0 {
		width = ui.GetTerminalWidth()
	}

	table := ui.NewTable("ID", "NAME", "STATE", "SUMMARY")
	for _, v := range m.Panels(width) {
		table.AddRow(v.ID, v.Name, panelState(v), panelNote(v))
	}

	fmt.Println(ui.NewHeader("Summary", "accordion summary", []ui.Param{
		{Key: "Config", Value: source},
	}).Render())
	fmt.Println()
	fmt.Println(table.Render())
	return nil
}

func panelState(v accordion.PanelView) string {
	state := "closed"
	if v.Open {
		state = "open"
	}
	if v.Pinned {
		state += ", pinned"
	}
	return state
}

func panelNote(v accordion.PanelView) string {
	switch {
	case v.Err != nil:
		return v.Err.Error()
	case v.Open:
		lines := strings.Count(v.Body, "\n") + 1
		if v.Clipped > 0 {
			return fmt.Sprintf("%d lines (%d clipped)", lines, v.Clipped)
		}
		return fmt.Sprintf("%d lines", lines)
	default:
		return v.Summary.String()
	}
}

// serveCmd runs the accordion with the state sync server attached
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the accordion and share its state over WebSocket",
	Long: `Run the interactive accordion and expose its host state on a WebSocket
endpoint.

Clients receive a snapshot of every state value on connect and a change
message whenever a value changes. A client may send {"type":"set","name":...,
"value":...} to write a value; the write is applied by the accordion exactly
as a key press would be.

With --advertise the session is registered over mDNS as _accordion._tcp so
'accordion discover' can find it.`,
	Example: `  # Serve on the default port
  accordion serve

  # Serve with TLS and advertise on the local network
  accordion serve --cert cert.pem --key key.pem --advertise`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (empty = all interfaces)")
	serveCmd.Flags().IntVar(&servePort, "port", 7420, "Listen port (0 picks a free port)")
	serveCmd.Flags().StringVar(&certPath, "cert", "", "Path to TLS certificate file")
	serveCmd.Flags().StringVar(&keyPath, "key", "", "Path to TLS private key file")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Advertise the session over mDNS")
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the accordion when the config file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	if (certPath == "") != (keyPath == "") {
		return fmt.Errorf("both --cert and --key must be provided together")
	}

	cfg := statesync.Config{Host: serveHost, Port: servePort}
	if certPath != "" {
		tlsCfg, err := statesync.NewTLSConfig(certPath, keyPath)
		if err != nil {
			return err
		}
		cfg.TLSConfig = tlsCfg
	}

	st := store.New(nil)
	s, err := newSession(st)
	if err != nil {
		return err
	}
	defer s.close()

	if watch {
		if err := s.startWatcher(); err != nil {
			return err
		}
	}

	srv := statesync.New(cfg, st, func(name string, value any) {
		s.program.Send(accordion.StateSetMsg{Name: name, Value: value, Source: "websocket"})
	})
	if err := srv.Listen(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start(ctx)
	}()

	if advertise {
		adv, err := discovery.Advertise(discovery.Advertisement{
			Port:    srv.Port(),
			Path:    statesync.DefaultPath,
			Version: version.Version,
			Config:  filepath.Base(s.source),
			TLS:     cfg.TLSConfig != nil,
		})
		if err != nil {
			// The session still works locally without mDNS.
			logging.Warn("Failed to advertise session", zap.Error(err))
		} else {
			defer adv.Shutdown()
		}
	}

	runErr := s.run()
	cancel()
	if err := <-serveErr; err != nil {
		logging.Error("State sync server stopped with error", zap.Error(err))
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}

// discoverCmd lists state sync sessions on the network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find accordion sessions on the local network",
	Long: `Browse mDNS for accordion sessions started with 'accordion serve --advertise'
and list their WebSocket URLs.`,
	Example: `  # Browse for 5 seconds (default)
  accordion discover

  # Longer browse for slow networks
  accordion discover --timeout 15`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", int(discovery.DefaultScanTimeout/time.Second), "Browse timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	timeout := time.Duration(scanTimeout) * time.Second
	fmt.Println(ui.NewHeader("Discover", "accordion discover", []ui.Param{
		{Key: "Service", Value: discovery.ServiceType},
		{Key: "Timeout", Value: timeout.String()},
	}).Render())
	fmt.Println()

	scanner := discovery.NewScanner()
	scanner.Timeout = timeout
	sessions, err := scanner.Scan(cmd.Context())
	if err != nil {
		fmt.Println(ui.RenderFailure("Discovery failed", err, []string{
			"Check that the network interface supports multicast",
			"Allow mDNS (UDP port 5353) through the firewall",
		}))
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println(ui.NewWarningResult("No sessions found", nil).
			AddDetail("Hint", "start one with 'accordion serve --advertise'").
			Render())
		return nil
	}

	table := ui.NewTable("INSTANCE", "URL", "DETAILS")
	for _, s := range sessions {
		var details []string
		if v := s.GetMetadata("version"); v != "" {
			details = append(details, "version "+v)
		}
		if c := s.GetMetadata("config"); c != "" {
			details = append(details, c)
		}
		table.AddRow(s.Instance, s.URL(), strings.Join(details, " · "))
	}
	fmt.Printf("Found %d session(s):\n\n%s\n", len(sessions), table.Render())
	return nil
}

// initCmd writes the demo document to disk
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the demo config document",
	Long: `Write the built-in demo document to the given path, --config, or the
default config location. An existing file is never overwritten unless --force
is passed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Replace an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if len(args) == 1 {
		path = args[0]
	}
	if initForce {
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return fmt.Errorf("failed to get config path: %w", err)
			}
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	written, err := config.WriteDefault(path)
	if err != nil {
		fmt.Println(ui.RenderFailure("Could not write config", err, nil))
		return err
	}
	fmt.Println(ui.RenderSuccess("Config written", []ui.Param{
		{Key: "Path", Value: written},
		{Key: "Next", Value: "accordion --config " + written},
	}))
	return nil
}
