package cache

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// maxSegmentLen bounds a single key segment. Longer segments are replaced by
// an xxhash digest; external cache backends (Redis, Memcache) reject or
// mistreat very long keys, and prefix invalidation only needs the namespace
// to stay literal.
const maxSegmentLen = 64

// defaultKeySerializer joins sanitized segments under a namespace.
// Keys look like "course_event_type::id::42" or "payment_method::all",
// so DeleteByPrefix(namespace) drops every key for one aggregate kind.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a cache key from the namespace and segments. The
// namespace is kept literal (after sanitization) so it remains usable as an
// invalidation prefix; each further segment is sanitized and length-bounded.
func (s *defaultKeySerializer) SerializeKey(namespace string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, sanitizeSegment(namespace))

	for _, seg := range segments {
		seg = sanitizeSegment(seg)
		if len(seg) > maxSegmentLen {
			seg = fmt.Sprintf("x%016x", xxhash.Sum64String(seg))
		}
		parts = append(parts, seg)
	}

	return strings.Join(parts, KeySeparator)
}

// sanitizeSegment lowercases a segment and collapses anything that is not a
// letter, digit, '.' or '-' into single underscores. Leaving punctuation in
// would break the prefix-based invalidation scheme and produce keys external
// backends reject.
func sanitizeSegment(s string) string {
	if s == "" {
		return "_"
	}

	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-':
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "_"
	}
	return out
}
