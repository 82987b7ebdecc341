package cache

import (
	"strings"
	"testing"
)

func TestDefaultKeySerializer_Basic(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name      string
		namespace string
		segments  []string
		expected  string
	}{
		{
			name:      "namespace only",
			namespace: "payment_method",
			expected:  "payment_method",
		},
		{
			name:      "collection key",
			namespace: "course_event_type",
			segments:  []string{"all"},
			expected:  "course_event_type" + KeySeparator + "all",
		},
		{
			name:      "by-id key",
			namespace: "course_event_type",
			segments:  []string{"id", "42"},
			expected:  "course_event_type" + KeySeparator + "id" + KeySeparator + "42",
		},
		{
			name:      "uuid segment survives",
			namespace: "course",
			segments:  []string{"id", "6f1f64a2-9c1e-4a9d-8a39-0c4b8f6f9d11"},
			expected:  "course" + KeySeparator + "id" + KeySeparator + "6f1f64a2-9c1e-4a9d-8a39-0c4b8f6f9d11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.namespace, tt.segments...)
			if got != tt.expected {
				t.Errorf("SerializeKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDefaultKeySerializer_Sanitization(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name     string
		segment  string
		expected string
	}{
		{name: "whitespace collapsed", segment: "venue  type", expected: "venue_type"},
		{name: "punctuation collapsed", segment: "a/b:c", expected: "a_b_c"},
		{name: "uppercase lowered", segment: "PaymentMethod", expected: "paymentmethod"},
		{name: "empty becomes placeholder", segment: "", expected: "_"},
		{name: "only punctuation becomes placeholder", segment: "///", expected: "_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey("kind", tt.segment)
			want := "kind" + KeySeparator + tt.expected
			if got != want {
				t.Errorf("SerializeKey() = %q, want %q", got, want)
			}
		})
	}
}

func TestDefaultKeySerializer_LongSegmentsHashed(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	long := strings.Repeat("a", maxSegmentLen+1)
	key := serializer.SerializeKey("kind", long)

	parts := strings.Split(key, KeySeparator)
	if len(parts) != 2 {
		t.Fatalf("expected 2 key parts, got %d (%q)", len(parts), key)
	}
	if len(parts[1]) > maxSegmentLen {
		t.Errorf("hashed segment still too long: %d chars", len(parts[1]))
	}
	if !strings.HasPrefix(parts[1], "x") {
		t.Errorf("expected hashed segment marker, got %q", parts[1])
	}

	// Same input must hash to the same key; different input must not.
	if again := serializer.SerializeKey("kind", long); again != key {
		t.Errorf("hashing not deterministic: %q vs %q", key, again)
	}
	other := serializer.SerializeKey("kind", strings.Repeat("b", maxSegmentLen+1))
	if other == key {
		t.Error("different long segments produced the same key")
	}
}

func TestDefaultKeySerializer_NamespaceStaysPrefix(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	// Prefix invalidation relies on every key for a kind sharing the literal
	// namespace prefix, whatever the segments look like.
	keys := []string{
		serializer.SerializeKey("course_event_type", "all"),
		serializer.SerializeKey("course_event_type", "id", "7"),
		serializer.SerializeKey("course_event_type", "id", strings.Repeat("z", 200)),
	}
	for _, key := range keys {
		if !strings.HasPrefix(key, "course_event_type"+KeySeparator) && key != "course_event_type" {
			t.Errorf("key %q lost its namespace prefix", key)
		}
	}
}
