package constants

import "testing"

func TestIsReservedPathSegment(t *testing.T) {
	cases := map[string]bool{
		"admin":       true,
		"Admin":       true,
		" news ":      true,
		"sitemap.xml": true,
		"s":           true,
		"national":    false,
		"":            false,
		"news-extra":  false,
	}
	for segment, want := range cases {
		if got := IsReservedPathSegment(segment); got != want {
			t.Fatalf("IsReservedPathSegment(%q) want %v got %v", segment, want, got)
		}
	}
}

func TestReservedPathSegmentsUnique(t *testing.T) {
	seen := make(map[string]struct{}, len(ReservedPathSegments))
	for _, segment := range ReservedPathSegments {
		if _, ok := seen[segment]; ok {
			t.Fatalf("duplicate reserved segment %q", segment)
		}
		seen[segment] = struct{}{}
	}
}
