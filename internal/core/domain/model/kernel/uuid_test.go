package kernel_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should generate distinct valid identifiers", func(t *testing.T) {
		a, b := kernel.NewUUID(), kernel.NewUUID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
	})

	t.Run("should parse textual forms to the same value", func(t *testing.T) {
		for _, in := range []string{canonical, "{" + canonical + "}", "urn:uuid:" + canonical} {
			id, err := kernel.UUIDFromString(in)

			require.NoError(t, err)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("office-7")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid UUID format")
	})

	t.Run("should reject nil bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(uuid.Nil[:])

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should round trip through bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		back, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(back))
	})

	t.Run("should treat zero value as unconstructed", func(t *testing.T) {
		var id kernel.UUID

		assert.True(t, id.IsZero())
		require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should compare optional references", func(t *testing.T) {
		a := kernel.NewUUID()
		b := a
		c := kernel.NewUUID()

		assert.True(t, kernel.EqualPtr(nil, nil))
		assert.True(t, kernel.EqualPtr(&a, &b))
		assert.False(t, kernel.EqualPtr(&a, &c))
		assert.False(t, kernel.EqualPtr(&a, nil))
	})

	t.Run("should panic on invalid constant", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustUUIDFromString("nope") })
	})
}
