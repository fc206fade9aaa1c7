package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel wrapped by every configuration error:
// invalid k, invalid min_points, empty point set, malformed embedding
// parameters. Configuration errors are reported immediately to the caller;
// no partial state is created.
var ErrInvalidConfig = errors.New("atria: invalid configuration")

// ErrEmptyPointSet is returned by tree.NewBuilder when the point set has
// zero points. It wraps ErrInvalidConfig.
var ErrEmptyPointSet = fmt.Errorf("%w: point set must contain at least one point", ErrInvalidConfig)
