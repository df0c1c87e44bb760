package common

import (
	"testing"
	"time"
)

func TestCacheServiceSetGetDelete(t *testing.T) {
	cs := NewCacheService(300, 600)

	if _, found := cs.Get("missing"); found {
		t.Error("Expected a miss for an unknown key")
	}

	cs.Set("radar", 42, time.Minute)
	val, found := cs.Get("radar")
	if !found || val.(int) != 42 {
		t.Errorf("Expected 42, got %v (found=%v)", val, found)
	}

	cs.Delete("radar")
	if _, found := cs.Get("radar"); found {
		t.Error("Expected a miss after Delete")
	}
}

func TestCacheServiceExpiry(t *testing.T) {
	cs := NewCacheService(300, 600)

	cs.Set("short", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, found := cs.Get("short"); found {
		t.Error("Expected the entry to expire")
	}
}
