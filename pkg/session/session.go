// Package session persists CLI working state between invocations.
//
// The render and preview commands remember the subject, category, and
// projection settings of the last successful run so repeat invocations can
// omit the flags. State is caller-owned: the engine packages never read or
// write it. Commands load the state, merge it under their explicit flags,
// and save it back after a successful run.
//
// # Usage
//
// Create a store and merge saved state under explicit flags:
//
//	store, err := session.NewFileStore("") // Uses ~/.config/clinigrid/
//	if err != nil {
//	    return err
//	}
//	state, err := store.Load(ctx)
//	if err != nil {
//	    return err
//	}
//	if subject == "" && state != nil {
//	    subject = state.Subject
//	}
//
// After a successful run, persist what was used:
//
//	store.Save(ctx, &session.State{Subject: subject, Theme: theme})
package session

import (
	"context"
	"time"
)

// State captures the inputs of the last successful run.
type State struct {
	Subject   string    `json:"subject,omitempty"`
	Category  string    `json:"category,omitempty"`
	Chart     string    `json:"chart,omitempty"`
	Theme     string    `json:"theme,omitempty"`
	Curve     string    `json:"curve,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is the interface for state persistence backends.
type Store interface {
	// Load retrieves the saved state.
	// Returns nil, nil if no state has been saved.
	Load(ctx context.Context) (*State, error)

	// Save stores the state, stamping UpdatedAt.
	Save(ctx context.Context, state *State) error

	// Clear removes the saved state.
	Clear(ctx context.Context) error
}
