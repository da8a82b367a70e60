package convert

import (
	"log/slog"

	"github.com/cxcsds/ahelpgen/internal/symbols"
)

// converter holds the per-document conversion state: the reference registry
// and the version aggregator are freshly constructed for every document so
// nothing leaks between symbols.
type converter struct {
	log      *slog.Logger
	sym      *symbols.Symbol
	name     string
	refs     *refRegistry
	versions *versionStore
}

func newConverter(log *slog.Logger, sym *symbols.Symbol) *converter {
	return &converter{
		log:      log,
		sym:      sym,
		name:     sym.Name,
		refs:     newRefRegistry(),
		versions: newVersionStore(sym.Name),
	}
}
