package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"paneldock/internal/config"
	"paneldock/internal/pty"
	"paneldock/internal/trace"
	"paneldock/internal/ui"
)

// stringSlice implements flag.Value for repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string { return strings.Join(*s, ", ") }
func (s *stringSlice) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// flags holds command-line overrides; unset flags keep the loaded config.
type flags struct {
	configPath string
	backend    string
	leader     string
	shell      string
	logFile    string
	logLevel   string
	otlp       string
	traceHTTP  bool
	tabs       stringSlice
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to a TOML config file (default $PANELDOCK_CONFIG)")
	flag.StringVar(&f.backend, "backend", "", "terminal host: bubbletea or tcell")
	flag.StringVar(&f.leader, "leader", "", "leader key, e.g. ctrl+a or space")
	flag.StringVar(&f.shell, "shell", "", "shell for the shell panel (default $SHELL)")
	flag.StringVar(&f.logFile, "log", "", "also write logs to this file")
	flag.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	flag.StringVar(&f.otlp, "otlp-endpoint", "", "export frame traces to this OTLP/HTTP endpoint")
	flag.BoolVar(&f.traceHTTP, "trace-http", false, "serve recent frame traces on 127.0.0.1 (see PANELDOCK_TRACE_PORT)")
	flag.Var(&f.tabs, "tab", "extra tab to create at startup (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: paneldock [flags]\n\n")
		fmt.Fprintf(os.Stderr, "paneldock is a terminal workspace of dockable, floating and tabbed panels.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return f
}

func (f flags) apply(cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Backend, f.backend)
	set(&cfg.Leader, f.leader)
	set(&cfg.Shell, f.shell)
	set(&cfg.LogFile, f.logFile)
	set(&cfg.LogLevel, f.logLevel)
	if f.traceHTTP {
		cfg.TraceHTTP = true
	}
	cfg.Tabs = append(cfg.Tabs, f.tabs...)
}

func main() {
	f := parseFlags()
	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "paneldock: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logBuf := ui.NewLogBuffer(0, level)
	handlers := []slog.Handler{logBuf}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer file.Close()
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	}
	logger := slog.New(ui.NewTeeHandler(handlers...))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := trace.NewRecorder(0)
	provider, err := trace.Setup(ctx, trace.Options{Endpoint: f.otlp, Recorder: recorder})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("trace shutdown", "err", err)
		}
	}()
	if provider.Exporting() {
		logger.Info("exporting traces over OTLP")
	}
	if cfg.TraceHTTP {
		srv := trace.NewServer(recorder)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("trace server: %w", err)
		}
		defer srv.Stop(context.Background())
		logger.Info("trace server listening", "addr", fmt.Sprintf("http://127.0.0.1:%d/frames", srv.Port()))
	}

	opts := ui.Options{
		Config:    cfg,
		Logger:    logger,
		LogBuffer: logBuf,
		Recorder:  recorder,
		Runner:    &pty.CreackPTY{},
	}

	if cfg.Backend == config.BackendTcell {
		return runTcell(ctx, opts, logger)
	}
	return runBubbleTea(ctx, opts)
}

func runBubbleTea(ctx context.Context, opts ui.Options) error {
	opts.Cols, opts.Rows = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Cols, opts.Rows = w, h
	}
	app, err := ui.NewApp(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Workspace().Shutdown()

	p := tea.NewProgram(app.AsTeaModel(),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runTcell(ctx context.Context, opts ui.Options, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcell: %w", err)
	}
	opts.Cols, opts.Rows = screen.Size()
	app, err := ui.NewApp(ctx, opts)
	if err != nil {
		screen.Fini()
		return err
	}
	defer app.Workspace().Shutdown()
	return ui.NewTcellHost(screen, app, logger).Run(ctx)
}
