package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownCommand is returned when a dispatch is attempted for an
// unregistered key.
var ErrUnknownCommand = errors.New("unknown command")

// Registry stores command handlers keyed by their canonical names.
// Lookups are case-insensitive; listing preserves registration order.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Command
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Command)}
}

// Register adds a command handler. The name is stored lowercase to
// provide case-insensitive lookups.
func (r *Registry) Register(handler Command) {
	if handler == nil {
		return
	}

	name := strings.ToLower(handler.Name())

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.handlers[name] = handler
}

// Execute runs the handler registered for the provided key.
func (r *Registry) Execute(ctx context.Context, key string, args []string) error {
	if r == nil {
		return fmt.Errorf("command registry is nil")
	}

	handler := r.getHandler(key)
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, key)
	}

	return handler.Execute(ctx, args)
}

// Commands returns the registered handlers in registration order.
func (r *Registry) Commands() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	commands := make([]Command, 0, len(r.order))
	for _, name := range r.order {
		commands = append(commands, r.handlers[name])
	}
	return commands
}

// Count returns the number of registered command handlers.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func (r *Registry) getHandler(key string) Command {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if key == "" {
		return nil
	}
	if handler, ok := r.handlers[strings.ToLower(key)]; ok {
		return handler
	}
	return nil
}
