// Copyright (C) 2026, AIZone Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package core

import "errors"

// Sentinel errors shared across the parser, registry and node packages.
var (
	// ErrUnknownType is returned by the parser when a name is not found in
	// the registry table it is resolved against. Registry lookups themselves
	// report a miss as a false bool.
	ErrUnknownType = errors.New("unknown type")
	// ErrMissingFilterDetails is returned by the condition parser for a
	// Filter(...) atom with no sub-filter.
	ErrMissingFilterDetails = errors.New("missing details for Filter condition")
	// ErrWeightCountMismatch is returned when a Steer node's weight list
	// and steering-child list have different lengths.
	ErrWeightCountMismatch = errors.New("steering weight count does not match steering child count")
)
