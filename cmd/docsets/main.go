package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docsets/archives"
	"github.com/fwojciec/docsets/catalog"
	"github.com/fwojciec/docsets/download"
	"github.com/fwojciec/docsets/fs"
	dshttp "github.com/fwojciec/docsets/http"
	"github.com/fwojciec/docsets/index"
	"github.com/fwojciec/docsets/lifecycle"
	dsslog "github.com/fwojciec/docsets/slog"
	"github.com/fwojciec/docsets/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	Config     Config
	Controller *lifecycle.Controller
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close cancels background work and waits for it.
func (m *Main) Close() error {
	if m.Controller != nil {
		m.Controller.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docsets"),
		kong.Description("Download, index and search offline documentation sets."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docsets --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath, required := cli.Config, true
	if configPath == "" {
		configPath, required = defaultConfigPath(), false
	}
	m.Config, err = LoadConfig(configPath, required)
	if err != nil {
		return err
	}
	if cli.DataDir != "" {
		m.Config.DataDir = cli.DataDir
	}

	level, err := m.Config.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	layout := fs.NewLayout(m.Config.DataDir)
	if err := layout.Ensure(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCSETS_DATA to use a different data directory\n")
		return err
	}

	m.Controller = m.wire(layout, logger, stderr)
	defer m.Close()

	deps.Logger = logger
	deps.Layout = layout
	deps.Controller = m.Controller

	return kongCtx.Run(deps)
}

// wire builds the controller and its collaborators.
func (m *Main) wire(layout fs.Layout, logger *slog.Logger, stderr io.Writer) *lifecycle.Controller {
	installs := fs.NewInstallStore(layout.DocsetsDir())

	source := dshttp.NewCatalogClient(
		dshttp.WithCatalogURL(m.Config.CatalogURL),
		dshttp.WithHTTPClient(&http.Client{Timeout: m.Config.Timeout}),
	)
	store := catalog.NewStore(
		dsslog.NewLoggingCatalogSource(source, logger),
		fs.NewCatalogCache(layout.CatalogFile()),
		fs.NewIconStore(layout.IconsDir()),
		installs,
		logger,
	)

	manager := download.NewManager(
		dsslog.NewLoggingDownloader(dshttp.NewDownloader(), logger),
		dsslog.NewLoggingExtractor(archives.NewExtractor(archives.WithLogger(logger)), logger),
		installs,
		m.Config.FeedURL,
		logger,
	)

	idx := &index.Index{}
	builder := index.NewBuilder(
		dsslog.NewLoggingEntryReader(sqlite.NewEntryReader(), logger),
		idx,
		store.Docsets,
		logger,
	)
	if m.Config.IndexConcurrency > 0 {
		builder.Concurrency = m.Config.IndexConcurrency
	}

	return lifecycle.NewController(store, manager, builder, idx, installs,
		lifecycle.WithEvents(dsslog.NewEvents(NewPrinter(stderr), logger)),
		lifecycle.WithLogger(logger),
	)
}
