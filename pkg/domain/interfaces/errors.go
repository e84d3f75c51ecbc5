package interfaces

import "github.com/m-mizutani/goerr/v2"

// Repository sentinel errors shared by every backend
var (
	ErrNotFound = goerr.New("not found")
	ErrConflict = goerr.New("already exists")
)
