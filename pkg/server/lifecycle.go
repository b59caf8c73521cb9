package server

import (
	"sync"
	"time"

	"birthday-tracker-api/internal/config"
)

// ContainerManager lazily builds one container per process and keeps it
// across Lambda invocations
type ContainerManager struct {
	mu        sync.Mutex
	container *Container
	lastUsed  time.Time
	load      func() (*config.Config, error)
	opts      []Option
}

// NewContainerManager creates a manager that loads configuration with load
// on first use. A nil load uses config.GetOptimizedConfig.
func NewContainerManager(load func() (*config.Config, error), opts ...Option) *ContainerManager {
	if load == nil {
		load = config.GetOptimizedConfig
	}
	return &ContainerManager{
		load: load,
		opts: opts,
	}
}

// GetContainer returns the service container, initializing if necessary. A
// failed initialization is retried on the next call.
func (cm *ContainerManager) GetContainer() (*Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		cfg, err := cm.load()
		if err != nil {
			return nil, err
		}
		container, err := NewContainer(cfg, cm.opts...)
		if err != nil {
			return nil, err
		}
		cm.container = container
	}

	cm.lastUsed = time.Now()
	return cm.container, nil
}

// LastUsed returns when the container was last handed out
func (cm *ContainerManager) LastUsed() time.Time {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.lastUsed
}

// Cleanup closes the container so the next call rebuilds it
func (cm *ContainerManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
