package logging

import "log/slog"

// Canonical log field names.
const (
	KeyItemID      = "item_id"
	KeyContentType = "content_type"
	KeySlug        = "slug"
	KeyRenderType  = "render_type"
	KeyReason      = "reason"
	KeyPages       = "pages"
	KeyDurationMS  = "duration_ms"
	KeyPath        = "path"
	KeyError       = "error"
)

func ItemID(id string) slog.Attr        { return slog.String(KeyItemID, id) }
func ContentType(t string) slog.Attr    { return slog.String(KeyContentType, t) }
func Slug(s string) slog.Attr           { return slog.String(KeySlug, s) }
func RenderType(t string) slog.Attr     { return slog.String(KeyRenderType, t) }
func Reason(r string) slog.Attr         { return slog.String(KeyReason, r) }
func Pages(n int) slog.Attr             { return slog.Int(KeyPages, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
