package memory

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the in-memory backend
var (
	ErrNotFound = goerr.New("record not found")
	ErrConflict = goerr.New("record modified concurrently")
)
