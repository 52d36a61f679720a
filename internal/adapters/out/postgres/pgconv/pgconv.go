// Package pgconv converts domain identifiers to and from the uuid columns
// shared by every repository.
package pgconv

import (
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ToPtr maps an optional reference to a nullable column value.
func ToPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// FromUUID reads a non-null uuid column.
func FromUUID(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

// FromPtr reads a nullable uuid column.
func FromPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ToSlice maps identifiers for IN clauses.
func ToSlice(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}
