package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/cxcsds/ahelpgen/cmd/ahelpgen/commands"
	"github.com/cxcsds/ahelpgen/internal/version"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	var cli commands.CLI
	g := &commands.Global{}

	ctx := kong.Parse(&cli,
		kong.Name("ahelpgen"),
		kong.Description("Convert parsed docstrings into structured help documents."),
		kong.Vars{"version": version.Version},
		kong.Bind(g),
	)
	ctx.FatalIfErrorf(ctx.Run(g))
}
