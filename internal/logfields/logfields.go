package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeySymbol   = "symbol"
	KeySection  = "section"
	KeyNodeKind = "node_kind"
	KeyContext  = "context"
	KeyCategory = "category"
	KeyOutFile  = "out_file"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Symbol(name string) slog.Attr  { return slog.String(KeySymbol, name) }
func Section(s string) slog.Attr    { return slog.String(KeySection, s) }
func NodeKind(k string) slog.Attr   { return slog.String(KeyNodeKind, k) }
func Context(c string) slog.Attr    { return slog.String(KeyContext, c) }
func Category(c string) slog.Attr   { return slog.String(KeyCategory, c) }
func OutFile(path string) slog.Attr { return slog.String(KeyOutFile, path) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
