package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/cxcsds/ahelpgen/internal/errors"
	"github.com/cxcsds/ahelpgen/internal/logfields"
)

// WatchCmd watches a directory of symbol descriptions and reconverts each
// file as it is written, for iterating on docstring fixes.
type WatchCmd struct {
	Dir string `arg:"" help:"Directory of symbol description files" type:"existingdir"`
	Out string `short:"o" help:"Output directory for generated documents (default from config, else ./out)"`
	DTD string `help:"Output DTD: ahelp or sxml (default from config, else ahelp)" enum:",ahelp,sxml" default:""`
}

func (cmd *WatchCmd) Run(g *Global) error {
	out, dtd := resolveOutput(g, cmd.Out, cmd.DTD)
	root := rootKind(dtd)

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", cmd.Dir, err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	g.Logger.Info("watching", logfields.RunID(g.RunID), logfields.Context(cmd.Dir))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isSymbolFile(event.Name) {
				continue
			}
			switch err := convertFile(g, event.Name, out, root); {
			case err == nil:
			case errors.IsFatal(err):
				g.Logger.Error("conversion failed",
					logfields.Context(event.Name),
					logfields.Category(string(errors.GetCategory(err))),
					logfields.Error(err))
			default:
				g.Logger.Warn("conversion diagnostic",
					logfields.Context(event.Name),
					logfields.Category(string(errors.GetCategory(err))),
					logfields.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.Logger.Error("watch error", logfields.Error(err))

		case <-sig:
			g.Logger.Info("shutting down", logfields.RunID(g.RunID))
			return nil
		}
	}
}
