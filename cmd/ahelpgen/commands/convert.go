package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cxcsds/ahelpgen/internal/ahelp"
	"github.com/cxcsds/ahelpgen/internal/convert"
	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/load"
	"github.com/cxcsds/ahelpgen/internal/logfields"
)

// ConvertCmd converts one or more symbol description files into help
// documents. A failed symbol is recorded and the batch continues; the
// command fails only if every symbol failed or the output cannot be written.
type ConvertCmd struct {
	Out   string   `short:"o" help:"Output directory for generated documents (default from config, else ./out)"`
	DTD   string   `help:"Output DTD: ahelp or sxml (default from config, else ahelp)" enum:",ahelp,sxml" default:""`
	Files []string `arg:"" name:"file" help:"Symbol description files" type:"existingfile"`
}

func (cmd *ConvertCmd) Run(g *Global) error {
	out, dtd := resolveOutput(g, cmd.Out, cmd.DTD)
	root := rootKind(dtd)

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	var failed []string
	for _, path := range cmd.Files {
		if err := convertFile(g, path, out, root); err != nil {
			if !errors.IsFatal(err) {
				// Non-fatal diagnostics do not count against the batch.
				g.Logger.Warn("conversion diagnostic",
					logfields.RunID(g.RunID),
					logfields.Context(path),
					logfields.Category(string(errors.GetCategory(err))),
					logfields.Error(err))
				continue
			}
			g.Logger.Error("conversion failed",
				logfields.RunID(g.RunID),
				logfields.Context(path),
				logfields.Category(string(errors.GetCategory(err))),
				logfields.Error(err))
			failed = append(failed, path)
		}
	}

	g.Logger.Info("batch finished",
		logfields.RunID(g.RunID),
		logfields.Context(fmt.Sprintf("%d/%d converted", len(cmd.Files)-len(failed), len(cmd.Files))))

	if len(failed) == len(cmd.Files) && len(cmd.Files) > 0 {
		return fmt.Errorf("all %d symbols failed", len(failed))
	}
	return nil
}

func rootKind(dtd string) ahelp.RootKind {
	if dtd == "sxml" {
		return ahelp.RootDocPage
	}
	return ahelp.RootHelptopics
}

// convertFile runs the full pipeline for one symbol description. No output
// file is written when conversion fails fatally; a non-fatal diagnostic is
// returned after the document has been written.
func convertFile(g *Global, path, outDir string, root ahelp.RootKind) error {
	file, err := load.ReadFile(path)
	if err != nil {
		return err
	}

	log := g.Logger.With(logfields.Symbol(file.Symbol.Name))
	doc, err := convert.Convert(log, file.Symbol, file.Document, convert.Options{
		Root:         root,
		LastModified: g.Config.Document.LastModified,
		Releases:     g.Config.Document.Releases,
	})
	if err != nil && errors.IsFatal(err) {
		return err
	}
	diag := err

	outPath := filepath.Join(outDir, file.Symbol.Name+"."+root.Suffix())
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	if err := ahelp.Write(out, doc); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	log.Info("converted", logfields.OutFile(outPath))
	return diag
}

// isSymbolFile reports whether a path looks like a symbol description.
func isSymbolFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
