package server

import (
	"errors"
	"testing"

	"birthday-tracker-api/internal/config"
	"birthday-tracker-api/internal/metrics"
)

func TestContainerManager_BuildsOnce(t *testing.T) {
	cfg := testConfig(t)
	loads := 0
	manager := NewContainerManager(func() (*config.Config, error) {
		loads++
		return cfg, nil
	}, WithLogger(quietLogger()), WithMetrics(metrics.NopRecorder{}))

	first, err := manager.GetContainer()
	if err != nil {
		t.Fatalf("GetContainer() failed: %v", err)
	}
	second, err := manager.GetContainer()
	if err != nil {
		t.Fatalf("GetContainer() failed: %v", err)
	}

	if first != second {
		t.Error("GetContainer() should reuse the container")
	}
	if loads != 1 {
		t.Errorf("config loaded %d times, want 1", loads)
	}
	if manager.LastUsed().IsZero() {
		t.Error("LastUsed should be set")
	}

	if err := manager.Cleanup(); err != nil {
		t.Fatalf("Cleanup() failed: %v", err)
	}
	third, err := manager.GetContainer()
	if err != nil {
		t.Fatalf("GetContainer() after cleanup failed: %v", err)
	}
	if third == first {
		t.Error("Cleanup() should drop the container")
	}
	manager.Cleanup()
}

func TestContainerManager_RetriesFailedLoad(t *testing.T) {
	cfg := testConfig(t)
	fail := true
	manager := NewContainerManager(func() (*config.Config, error) {
		if fail {
			return nil, errors.New("missing DB_HOST")
		}
		return cfg, nil
	}, WithLogger(quietLogger()), WithMetrics(metrics.NopRecorder{}))

	if _, err := manager.GetContainer(); err == nil {
		t.Fatal("GetContainer() should fail while config is invalid")
	}

	fail = false
	if _, err := manager.GetContainer(); err != nil {
		t.Fatalf("GetContainer() should recover: %v", err)
	}
	manager.Cleanup()
}
