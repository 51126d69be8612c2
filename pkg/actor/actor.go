// Package actor identifies the user performing actions across the service.
//
// This package is used for:
// - Audit logging (who performed an action)
// - Attribution on field values and report blocks
package actor

import (
	"context"
	"fmt"
)

// Actor represents the entity performing an action in the system.
type Actor struct {
	// ID is the unique identifier of the actor (user ID)
	ID string `json:"id"`

	// Name is the actor's display name
	Name string `json:"name"`

	// Badge is the actor's badge/registration number, if any
	Badge string `json:"badge,omitempty"`

	// Role is the actor's rank or function (optional, for display purposes)
	Role string `json:"role,omitempty"`
}

// DisplayName returns the name used for audit attribution
func (a *Actor) DisplayName() string {
	if a == nil {
		return "system"
	}
	if a.Badge != "" {
		return fmt.Sprintf("%s (%s)", a.Name, a.Badge)
	}
	return a.Name
}

// String returns a string representation of the actor for logging
func (a *Actor) String() string {
	if a == nil {
		return "system"
	}
	return a.DisplayName()
}

// contextKey is the type for context keys to avoid collisions
type contextKey string

const actorContextKey contextKey = "actor"

// FromContext retrieves the Actor from the context.
// Returns nil if no actor is present (e.g., system operations).
func FromContext(ctx context.Context) *Actor {
	if ctx == nil {
		return nil
	}
	a, ok := ctx.Value(actorContextKey).(*Actor)
	if !ok {
		return nil
	}
	return a
}

// WithActor returns a new context with the Actor attached.
func WithActor(ctx context.Context, a *Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey, a)
}

// SystemActor returns an Actor representing the system itself.
// Use this for background jobs and system-initiated operations.
func SystemActor() *Actor {
	return &Actor{
		ID:   "00000000-0000-0000-0000-000000000000",
		Name: "System",
	}
}

// IsSystem returns true if the actor represents the system.
func (a *Actor) IsSystem() bool {
	if a == nil {
		return true
	}
	return a.ID == "00000000-0000-0000-0000-000000000000"
}
