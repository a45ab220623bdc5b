package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/version"
)

// Main represents the program.
type Main struct {
	Stdout io.Writer
	Stderr io.Writer
	// Exit is called by kong after --help and --version. Defaults to os.Exit.
	Exit   func(int)

	cli CLI
}

// NewMain returns a Main writing to the process streams.
func NewMain() *Main {
	return &Main{Stdout: os.Stdout, Stderr: os.Stderr, Exit: os.Exit}
}

// Verbose reports whether --verbose was parsed.
func (m *Main) Verbose() bool { return m.cli.Verbose }

// Run parses args and executes the selected command.
func (m *Main) Run(ctx context.Context, args []string) error {
	g := &Global{Ctx: ctx, Stdout: m.Stdout, Stderr: m.Stderr}
	parser, err := kong.New(&m.cli,
		kong.Name("notesite"),
		kong.Description("Site configuration and sidebar taxonomy for a notes site."),
		kong.UsageOnError(),
		kong.Writers(m.Stdout, m.Stderr),
		kong.Exit(m.Exit),
		kong.Bind(g),
		kong.Vars{
			"version":        fmt.Sprintf("notesite %s (commit %s, built %s)", version.Version, version.GitCommit, version.BuildTime),
			"default_config": config.DefaultFile,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return kctx.Run()
}
