package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/qalink/jsonfile"
	"github.com/fwojciec/qalink/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Store file path. Set before calling Run().
	StorePath string

	// Search log database path. Empty disables search logging.
	DBPath string

	// Store used by all commands.
	Store *jsonfile.Store

	// Search log database, opened only when DBPath is set.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		StorePath: defaultStorePath(),
		DBPath:    os.Getenv("QALINK_DB"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("qalink"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'qalink --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open the store. The export and audit commands read the file
	// themselves, but opening is cheap and keeps the wiring uniform.
	m.Store = jsonfile.NewStore(m.StorePath)
	if err := m.Store.Open(); err != nil {
		return fmt.Errorf("failed to open store at %q: %w", m.StorePath, err)
	}
	deps.Store = m.Store
	deps.StorePath = m.StorePath

	if m.DBPath != "" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open search log at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.SearchLog = sqlite.NewSearchLogService(m.DB)
	}

	return kongCtx.Run(deps)
}

// defaultStorePath returns QALINK_STORE or the conventional local path.
func defaultStorePath() string {
	if path := os.Getenv("QALINK_STORE"); path != "" {
		return path
	}
	return "data/qa_store.json"
}

// newLogger builds the process logger. LOGLEVEL follows the usual names;
// anything unrecognized means info.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOGLEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
