package repository

import "errors"

// ErrNotFound signals an absent entity for any get/update/delete by key.
var ErrNotFound = errors.New("not found")

// ErrDuplicate signals a unique-key collision on create or update. Handlers
// surface it as a field-level validation error, not a store failure.
var ErrDuplicate = errors.New("duplicate key")
