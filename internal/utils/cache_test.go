package utils

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	cache := NewCache[string, string]()

	cache.Set("key", "value")

	value, exists := cache.Get("key")
	if !exists || value != "value" {
		t.Errorf("Expected (value, true), got (%s, %v)", value, exists)
	}

	if _, exists := cache.Get("missing"); exists {
		t.Error("Expected missing key to not exist")
	}
}

func TestCache_SetIfAbsent(t *testing.T) {
	cache := NewCache[string, string]()

	first := cache.SetIfAbsent("key", "first")
	if first != "first" {
		t.Errorf("Expected first stored value, got %s", first)
	}

	second := cache.SetIfAbsent("key", "second")
	if second != "first" {
		t.Errorf("Expected the first value to win, got %s", second)
	}

	if cache.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", cache.Len())
	}
}

func TestCache_SetIfAbsentConcurrent(t *testing.T) {
	cache := NewCache[string, int]()

	results := make([]int, 32)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.SetIfAbsent("key", i)
		}(i)
	}
	wg.Wait()

	for _, result := range results {
		if result != results[0] {
			t.Fatalf("Concurrent callers observed different values: %v", results)
		}
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	cache := NewCache[string, int]()
	cache.Set("a", 1)
	cache.Set("b", 2)

	cache.Delete("a")
	if _, exists := cache.Get("a"); exists {
		t.Error("Expected deleted key to be gone")
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d items", cache.Len())
	}
}

func TestCache_FileValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cache := NewCache[string, string]()
	if err := cache.SetWithFileInfo("key", "cached", path); err != nil {
		t.Fatalf("SetWithFileInfo failed: %v", err)
	}

	value, valid := cache.GetWithFileValidation("key", path)
	if !valid || value != "cached" {
		t.Errorf("Expected cached value while file unchanged, got (%s, %v)", value, valid)
	}

	// Change both content length and mtime so the entry invalidates.
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(path, []byte("changed content"), 0644); err != nil {
		t.Fatalf("Failed to rewrite test file: %v", err)
	}

	if _, valid := cache.GetWithFileValidation("key", path); valid {
		t.Error("Expected cache entry to invalidate after file change")
	}

	if _, exists := cache.Get("key"); exists {
		t.Error("Expected invalidated entry to be removed")
	}
}
