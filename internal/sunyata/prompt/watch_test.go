package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.toml")
	if err := os.WriteFile(path, []byte(`system = "first"`), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan string, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(s string) { changes <- s }, nil)
	}()

	// let the watcher register before writing
	time.Sleep(200 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte(`system = "ignored"`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`system = "second"`), 0644); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-changes:
			if got == "ignored" {
				t.Fatal("change to another file was delivered")
			}
			if got == "second" {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Watch returned error: %v", err)
				}
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for the reloaded prompt")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "system.toml"), func(string) {}, nil)
	if err == nil {
		t.Error("expected an error for a missing directory")
	}
}
