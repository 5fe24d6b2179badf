package lambda

import (
	"context"
	"sync"
	"time"

	"prediction-proxy/internal/config"
	"prediction-proxy/pkg/server"
)

// staleAfter is how long an idle container is trusted before it is rebuilt
const staleAfter = 5 * time.Minute

// ConnectionManager keeps the prediction client alive across warm Lambda invocations
type ConnectionManager struct {
	container   *server.Container
	lastUsed    time.Time
	mu          sync.RWMutex
	initialized bool
	config      *config.Config
	factory     func(cfg *config.Config) (*server.Container, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(server.NewContainer)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a connection manager building containers with factory
func NewConnectionManager(factory func(cfg *config.Config) (*server.Container, error)) *ConnectionManager {
	return &ConnectionManager{factory: factory}
}

// Initialize builds the container from configuration unless it already exists
func (cm *ConnectionManager) Initialize(cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.initialized {
		return nil
	}

	container, err := cm.factory(cfg)
	if err != nil {
		return err
	}

	cm.config = cfg
	cm.container = container
	cm.lastUsed = time.Now()
	cm.initialized = true
	return nil
}

// GetContainer returns the service container, initializing if necessary.
// A container idle for longer than staleAfter is closed and rebuilt.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	if cm.IsHealthy() {
		cm.mu.RLock()
		container := cm.container
		cm.mu.RUnlock()
		if container != nil {
			cm.UpdateLastUsed()
			return container, nil
		}
	}

	cm.mu.RLock()
	stale := cm.container
	cfg := cm.config
	cm.mu.RUnlock()

	if stale != nil {
		if err := cm.Cleanup(); err != nil {
			stale.Logger.WithError(err).Warn("Failed to close stale container")
		}
	}

	if cfg == nil {
		var err error
		cfg, err = config.GetOptimizedConfig()
		if err != nil {
			return nil, err
		}
	}
	if err := cm.Initialize(cfg); err != nil {
		return nil, err
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.container, nil
}

// IsHealthy checks if the connection manager holds a recently used container
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if !cm.initialized || cm.container == nil {
		return false
	}

	return time.Since(cm.lastUsed) < staleAfter
}

// Cleanup closes the container; the next GetContainer rebuilds it
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	container := cm.container
	cm.container = nil
	cm.initialized = false

	if container != nil {
		return container.Close()
	}
	return nil
}

// UpdateLastUsed updates the last used timestamp
func (cm *ConnectionManager) UpdateLastUsed() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.lastUsed = time.Now()
}
