package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPlugin    = "plugin"
	KeyOperation = "operation"
	KeyBuildID   = "build_id"
	KeyStrategy  = "strategy"
	KeyCwd       = "cwd"
	KeyOut       = "out"
	KeyPath      = "path"
	KeyKind      = "kind"
	KeyCompiler  = "compiler"
	KeyVersion   = "version"
	KeyDuration  = "duration_ms"
	KeyError     = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func Operation(op string) slog.Attr   { return slog.String(KeyOperation, op) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Strategy(name string) slog.Attr  { return slog.String(KeyStrategy, name) }
func Cwd(dir string) slog.Attr        { return slog.String(KeyCwd, dir) }
func Out(dir string) slog.Attr        { return slog.String(KeyOut, dir) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Compiler(bin string) slog.Attr   { return slog.String(KeyCompiler, bin) }
func Version(v string) slog.Attr      { return slog.String(KeyVersion, v) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDuration, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
