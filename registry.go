package wata

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry errors.
var (
	// ErrClientExists is returned when registering a name twice.
	ErrClientExists = errors.New("client already registered")
	// ErrClientNotFound is returned when a name is not registered.
	ErrClientNotFound = errors.New("client not registered")
)

// Registry is an application-owned mapping of named clients with explicit
// lifecycle. It replaces process-wide client state: create one, pass it by
// reference, and close it when done. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*Client
}

// NewRegistry creates an empty client registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Create builds a new client with New and registers it under name.
func (r *Registry) Create(name, token string, opts ...Option) (*Client, error) {
	client, err := New(token, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Register(name, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Register adds an existing client under name.
func (r *Registry) Register(name string, client *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("%w: %q", ErrClientExists, name)
	}
	r.clients[name] = client
	return nil
}

// Get returns the client registered under name.
func (r *Registry) Get(name string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[name]
	return client, ok
}

// Names returns the registered client names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes the client registered under name and removes it.
func (r *Registry) Close(name string) error {
	r.mu.Lock()
	client, ok := r.clients[name]
	delete(r.clients, name)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrClientNotFound, name)
	}
	return client.Close()
}

// CloseAll closes every registered client and empties the registry.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]*Client)
	r.mu.Unlock()

	var errs []error
	for _, client := range clients {
		if err := client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
