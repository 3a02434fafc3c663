package utils

import (
	"sort"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry[string, int]()

	registry.Register("a", 1)
	registry.Register("b", 2)

	value, exists := registry.Get("a")
	if !exists || value != 1 {
		t.Errorf("Expected (1, true), got (%d, %v)", value, exists)
	}

	if _, exists := registry.Get("missing"); exists {
		t.Error("Expected missing key to not exist")
	}

	if !registry.Has("b") {
		t.Error("Expected Has to report registered key")
	}

	if registry.Len() != 2 {
		t.Errorf("Expected 2 items, got %d", registry.Len())
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry[string, int]()
	registry.Register("a", 1)
	registry.Register("a", 2)

	value, _ := registry.Get("a")
	if value != 2 {
		t.Errorf("Expected replacement value 2, got %d", value)
	}
	if registry.Len() != 1 {
		t.Errorf("Expected 1 item after replacement, got %d", registry.Len())
	}
}

func TestRegistry_RegisterOnce(t *testing.T) {
	registry := NewRegistry[string, int]()

	if err := registry.RegisterOnce("a", 1); err != nil {
		t.Fatalf("Unexpected error on first registration: %v", err)
	}
	if err := registry.RegisterOnce("a", 2); err == nil {
		t.Error("Expected error on duplicate registration")
	}

	value, _ := registry.Get("a")
	if value != 1 {
		t.Errorf("Expected first value 1 to survive, got %d", value)
	}
}

func TestRegistry_List(t *testing.T) {
	registry := NewRegistry[string, int]()
	registry.Register("b", 2)
	registry.Register("a", 1)

	keys := registry.List()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Expected [a b], got %v", keys)
	}
}
