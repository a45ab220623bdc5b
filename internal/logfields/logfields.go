package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyDocID      = "doc_id"
	KeySidebar    = "sidebar"
	KeyLocale     = "locale"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyRemote     = "remote"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func DocID(id string) slog.Attr { return slog.String(KeyDocID, id) }
func Sidebar(name string) slog.Attr { return slog.String(KeySidebar, name) }
func Locale(code string) slog.Attr { return slog.String(KeyLocale, code) }
func Rule(name string) slog.Attr { return slog.String(KeyRule, name) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr { return slog.String(KeyBuildID, id) }
func Remote(name string) slog.Attr { return slog.String(KeyRemote, name) }
func Addr(a string) slog.Attr { return slog.String(KeyAddr, a) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
