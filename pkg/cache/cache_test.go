package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestCacheSetPeekDelete(t *testing.T) {
	c := New(Options{TTL: 50 * time.Millisecond, StaleWhileRevalidate: 20 * time.Millisecond, MaxEntries: 10})

	c.Set("alpha", "value", 50*time.Millisecond)
	if val, ok := c.Peek("alpha"); !ok || val.(string) != "value" {
		t.Fatalf("expected peeked value")
	}

	c.Delete("alpha")
	if _, ok := c.Peek("alpha"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestCacheGetHitAndMiss(t *testing.T) {
	c := New(Options{TTL: time.Minute, StaleWhileRevalidate: time.Minute, MaxEntries: 10})

	var mu sync.Mutex
	callCount := 0
	loader := func(_ context.Context, _ string) (interface{}, bool, error) {
		mu.Lock()
		defer mu.Unlock()
		callCount++
		return callCount, true, nil
	}

	val, ok, err := c.Get(context.Background(), "alpha", loader)
	if err != nil || !ok || val.(int) != 1 {
		t.Fatalf("expected first load")
	}

	val, ok, err = c.Get(context.Background(), "alpha", loader)
	if err != nil || !ok || val.(int) != 1 {
		t.Fatalf("expected cache hit, got %v", val)
	}
}

func TestCacheGetLoaderError(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 10})
	wantErr := errors.New("load failed")
	loader := func(_ context.Context, _ string) (interface{}, bool, error) {
		return nil, false, wantErr
	}

	_, ok, err := c.Get(context.Background(), "alpha", loader)
	if ok {
		t.Fatalf("expected miss")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestCacheEviction(t *testing.T) {
	c := New(Options{TTL: time.Minute, MaxEntries: 2})
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Set("c", 3, time.Minute)

	if _, ok := c.Peek("a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if _, ok := c.Peek("c"); !ok {
		t.Fatalf("expected newest entry to survive")
	}
}
