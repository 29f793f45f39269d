package cache

import (
	"testing"
	"time"
)

func TestExtractionKey(t *testing.T) {
	a := ExtractionKey("openai", "gpt-4o-mini", "24-hour emergency department")
	b := ExtractionKey("openai", "gpt-4o-mini", "24-hour emergency department")
	if a != b {
		t.Error("identical inputs must produce identical keys")
	}

	// Any input change must miss
	variants := []string{
		ExtractionKey("groq", "gpt-4o-mini", "24-hour emergency department"),
		ExtractionKey("openai", "llama-3.3", "24-hour emergency department"),
		ExtractionKey("openai", "gpt-4o-mini", "24-hour emergency dept"),
	}
	for i, v := range variants {
		if v == a {
			t.Errorf("variant %d should differ from the base key", i)
		}
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if val, found := c.Get("k"); !found || string(val) != "v" {
		t.Errorf("expected hit with v, got %q (%v)", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDiskCache_Persistence(t *testing.T) {
	dir := t.TempDir()

	c1 := NewDiskCache(dir, time.Hour)
	if err := c1.Set("k", []byte("persisted"), 0); err != nil {
		t.Fatal(err)
	}

	// A fresh cache over the same directory sees the entry
	c2 := NewDiskCache(dir, time.Hour)
	val, found := c2.Get("k")
	if !found || string(val) != "persisted" {
		t.Errorf("expected persisted value, got %q (%v)", val, found)
	}

	if err := c2.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, found := c2.Get("k"); found {
		t.Error("expected miss after clear")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer only
	disk := NewDiskCache(dir, time.Hour)
	if err := disk.Set("k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	if val, found := layered.Get("k"); !found || string(val) != "v" {
		t.Fatalf("expected disk hit through the layered cache, got %q (%v)", val, found)
	}

	// After promotion the memory layer serves it directly
	if val, found := layered.memory.Get("k"); !found || string(val) != "v" {
		t.Errorf("expected promoted entry in memory, got %q (%v)", val, found)
	}
}
