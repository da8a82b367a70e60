package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/cxcsds/ahelpgen/internal/config"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
	RunID  string
	Config *config.Config
}

// CLI definition and global flags.
type CLI struct {
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Config  string           `short:"c" help:"Configuration file path" type:"existingfile" optional:""`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" help:"Convert symbol description files to help documents"`
	Watch   WatchCmd   `cmd:"" help:"Watch a directory and convert files as they change"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	g.RunID = uuid.NewString()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	g.Config = cfg
	return nil
}

// resolveOutput applies the flag-over-config precedence for the shared
// output settings.
func resolveOutput(g *Global, out, dtd string) (string, string) {
	if out == "" {
		out = g.Config.Output.Directory
	}
	if dtd == "" {
		dtd = g.Config.Output.DTD
	}
	return out, dtd
}
