package game

import (
	"errors"
	"fmt"
)

// ConfigError reports an invalid game configuration detected while building a
// GameState or simulation. It is fatal before the hand starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid game config: %s %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Builder-level sentinel errors.
var (
	ErrNeedAgents    = errors.New("simulation requires one agent per seat")
	ErrNeedGameState = errors.New("simulation requires a game state")
	ErrNoWinner      = errors.New("tournament ended without a single winner")
)

// HistorianError wraps a failure reported by a historian. The simulation
// removes the offending historian for the remainder of the hand unless
// configured to panic.
type HistorianError struct {
	Err error
}

func (e *HistorianError) Error() string {
	return fmt.Sprintf("historian: %v", e.Err)
}

func (e *HistorianError) Unwrap() error {
	return e.Err
}

type errUnknownRound string

func (e errUnknownRound) Error() string {
	return fmt.Sprintf("unknown round %q", string(e))
}
