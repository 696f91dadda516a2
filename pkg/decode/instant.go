package decode

import (
	"math"
	"time"

	serr "github.com/dunkyl/slymastodon/pkg/err"
	"github.com/dunkyl/slymastodon/pkg/shape"
	"github.com/dunkyl/slymastodon/pkg/value"
)

// isoLayouts are the accepted ISO-8601 forms, from most to least specific.
// Mastodon emits full RFC 3339 timestamps for most fields but bare dates for
// some (e.g. an account's last_status_at).
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// decodeInstant accepts an ISO-8601 string or a POSIX epoch value in
// seconds. Any other value kind fails.
func decodeInstant(s *shape.Shape, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.ValueString:
		sv, _ := v.String()
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, sv); err == nil {
				return value.NewTime(t), nil
			}
		}
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("ISO-8601 timestamp", "malformed string"))
	case value.ValueInt:
		iv, _ := v.Int64()
		return value.NewTime(time.Unix(iv, 0).UTC()), nil
	case value.ValueFloat:
		fv, _ := v.Float64()
		sec, frac := math.Modf(fv)
		return value.NewTime(time.Unix(int64(sec), int64(frac*1e9)).UTC()), nil
	default:
		return value.Value{}, NewError(v, s, serr.ErrKindMismatch("string or number", string(v.Kind())))
	}
}
