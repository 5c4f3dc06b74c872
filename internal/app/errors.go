package app

import "errors"

// ErrStarNotFound is returned when the ledger has no record of a star.
var ErrStarNotFound = errors.New("star not found in local ledger")
