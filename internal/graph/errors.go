package graph

import (
	"errors"
	"fmt"
)

// Validation errors. ErrEmptyGraph and the data-source errors of other
// packages wrap ErrValidation so callers can test for the whole family.
var (
	ErrValidation = errors.New("invalid graph")
	ErrEmptyGraph = fmt.Errorf("%w: graph has no nodes", ErrValidation)
)
