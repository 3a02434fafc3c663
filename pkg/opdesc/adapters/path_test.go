package adapters

import (
	"reflect"
	"testing"
)

func TestColonPath(t *testing.T) {
	tests := []struct {
		uri      string
		expected string
	}{
		{"/widgets/{id}", "/widgets/:id"},
		{"/widgets/{id}/parts/{part_id}", "/widgets/:id/parts/:part_id"},
		{"/widgets", "/widgets"},
		{"/", "/"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ColonPath(tt.uri); got != tt.expected {
			t.Errorf("ColonPath(%q) = %q, want %q", tt.uri, got, tt.expected)
		}
	}
}

func TestURIParams(t *testing.T) {
	tests := []struct {
		uri      string
		expected []string
	}{
		{"/widgets/{id}", []string{"id"}},
		{"/widgets/{id}/parts/{part_id}", []string{"id", "part_id"}},
		{"/widgets", nil},
		{"", nil},
	}

	for _, tt := range tests {
		if got := URIParams(tt.uri); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("URIParams(%q) = %v, want %v", tt.uri, got, tt.expected)
		}
	}
}
