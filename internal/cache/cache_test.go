package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	a := Key("https://txschools.gov/schools/alpha")
	b := Key("https://txschools.gov/schools/beta")
	if a == b {
		t.Error("distinct URLs should produce distinct keys")
	}
	if a != Key("https://txschools.gov/schools/alpha") {
		t.Error("key derivation should be deterministic")
	}
	if !strings.HasPrefix(a, "schoolscout:v1:") {
		t.Errorf("key missing version prefix: %q", a)
	}
}

func TestMemory(t *testing.T) {
	c := NewMemory(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache should miss")
	}

	if err := c.Set("k", []byte("page body"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "page body" {
		t.Errorf("get = %q, %v", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("deleted entry should miss")
	}
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory(time.Minute, time.Minute)
	if err := c.Set("k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired entry should miss")
	}
}

func TestDisk(t *testing.T) {
	dir := t.TempDir()
	c := NewDisk(dir, time.Hour)

	key := Key("https://txschools.gov/schools/alpha")
	if err := c.Set(key, []byte("page body"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh instance over the same directory still sees the entry.
	c2 := NewDisk(dir, time.Hour)
	val, found := c2.Get(key)
	if !found || string(val) != "page body" {
		t.Errorf("get after restart = %q, %v", val, found)
	}

	if err := c2.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c2.Get(key); found {
		t.Error("deleted entry should miss")
	}
}

func TestDisk_Expiry(t *testing.T) {
	c := NewDisk(t.TempDir(), time.Hour)
	if err := c.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expired entry should miss")
	}
}

func TestLayered_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer, as a resumed run would find it.
	seed := NewDisk(dir, time.Hour)
	if err := seed.Set("k", []byte("page body"), 0); err != nil {
		t.Fatal(err)
	}

	c := NewLayered(time.Minute, dir, time.Hour)
	val, found := c.Get("k")
	if !found || string(val) != "page body" {
		t.Fatalf("disk hit = %q, %v", val, found)
	}

	// The hit is promoted: removing the disk entry does not evict it.
	if err := seed.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get("k"); !found {
		t.Error("promoted entry should stay in the memory layer")
	}
}

func TestLayered_WritesBothLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewLayered(time.Minute, dir, time.Hour)
	if err := c.Set("k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}

	disk := NewDisk(dir, time.Hour)
	if _, found := disk.Get("k"); !found {
		t.Error("write should reach the disk layer")
	}
}
