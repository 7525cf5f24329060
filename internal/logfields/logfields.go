// Package logfields defines canonical slog attribute keys so every package
// logs the same concept under the same name.
package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath   = "path"
	KeyName   = "name"
	KeyMode   = "mode"
	KeyURL    = "url"
	KeySize   = "size_bytes"
	KeyCount  = "count"
	KeyFile   = "file"
	KeyError  = "error"
	KeyStatus = "status"
)

func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Name(n string) slog.Attr { return slog.String(KeyName, n) }
func Mode(m string) slog.Attr { return slog.String(KeyMode, m) }
func URL(u string) slog.Attr { return slog.String(KeyURL, u) }
func Size(b int64) slog.Attr { return slog.Int64(KeySize, b) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
