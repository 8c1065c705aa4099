package repositories

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/rios0rios0/gitbridge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/gitbridge/internal/domain/repositories"
	"github.com/rios0rios0/gitbridge/internal/infrastructure/httpclient"
)

// ProviderFactory is a constructor function that creates a ProviderRepository for one backend.
type ProviderFactory func(config entities.BackendConfig, opts ...httpclient.Option) domainRepos.ProviderRepository

// ErrNoBackends is returned by lookups before any backend was configured.
var ErrNoBackends = errors.New("no backend is configured")

// ProviderRegistry keeps the provider factories by backend type and the configured
// adapter instances by backend name.
type ProviderRegistry struct {
	mu          sync.RWMutex
	factories   map[string]ProviderFactory
	instances   map[string]domainRepos.ProviderRepository
	order       []string
	defaultName string
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		factories: make(map[string]ProviderFactory),
		instances: make(map[string]domainRepos.ProviderRepository),
	}
}

// Register adds a provider factory under the given backend type (e.g. "github").
func (r *ProviderRegistry) Register(kind string, factory ProviderFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// Configure builds one adapter per backend, replacing any previous configuration.
// The default is defaultName, or the first backend when it is empty.
func (r *ProviderRegistry) Configure(
	backends []entities.BackendConfig,
	defaultName string,
	opts ...httpclient.Option,
) error {
	if len(backends) == 0 {
		return ErrNoBackends
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	instances := make(map[string]domainRepos.ProviderRepository, len(backends))
	order := make([]string, 0, len(backends))
	for _, backend := range backends {
		if backend.Name == "" {
			return fmt.Errorf("backend of type %q has no name", backend.Type)
		}
		if _, exists := instances[backend.Name]; exists {
			return fmt.Errorf("duplicate backend name %q", backend.Name)
		}
		factory, ok := r.factories[backend.Type]
		if !ok {
			return fmt.Errorf("unknown provider type %q for backend %q", backend.Type, backend.Name)
		}
		instances[backend.Name] = factory(backend, opts...)
		order = append(order, backend.Name)
	}

	if defaultName == "" {
		defaultName = order[0]
	}
	if _, ok := instances[defaultName]; !ok {
		return fmt.Errorf("default backend %q is not configured", defaultName)
	}

	r.instances = instances
	r.order = order
	r.defaultName = defaultName
	return nil
}

// Get returns the adapter configured under name. There is no fallback to another backend.
func (r *ProviderRegistry) Get(name string) (domainRepos.ProviderRepository, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.instances[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q", name)
	}
	return provider, nil
}

// Default returns the default adapter.
func (r *ProviderRegistry) Default() (domainRepos.ProviderRepository, error) {
	r.mu.RLock()
	name := r.defaultName
	r.mu.RUnlock()

	if name == "" {
		return nil, ErrNoBackends
	}
	return r.Get(name)
}

// Resolve returns the adapter named name, or the default one when name is empty.
func (r *ProviderRegistry) Resolve(name string) (domainRepos.ProviderRepository, error) {
	if name == "" {
		return r.Default()
	}
	return r.Get(name)
}

// DefaultName returns the name of the default backend.
func (r *ProviderRegistry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}

// Names returns the configured backend names in configuration order.
func (r *ProviderRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Kinds returns the registered backend types, sorted.
func (r *ProviderRegistry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
