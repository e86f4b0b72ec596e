package club

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileUpdate(t *testing.T) {
	t.Run("allowed fields", func(t *testing.T) {
		upd, err := ParseProfileUpdate([]byte(`{"name":"Ana","phone":"600000000"}`))
		require.NoError(t, err)
		require.NotNil(t, upd.Name)
		assert.Equal(t, "Ana", *upd.Name)
		assert.Equal(t, "600000000", *upd.Phone)
		assert.Nil(t, upd.Surname)
		assert.Nil(t, upd.Category)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		_, err := ParseProfileUpdate([]byte(`{"name":"Ana","rating":3000}`))
		assert.ErrorIs(t, err, ErrUnknownProfileField)
		assert.Contains(t, err.Error(), "rating")
	})

	t.Run("fields owned by the system are rejected", func(t *testing.T) {
		for _, body := range []string{`{"league_code":"L2"}`, `{"email":"x@example.com"}`, `{"id":"p2"}`} {
			_, err := ParseProfileUpdate([]byte(body))
			assert.ErrorIs(t, err, ErrUnknownProfileField, body)
		}
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := ParseProfileUpdate([]byte(`{"phone":600000000}`))
		assert.ErrorIs(t, err, ErrInvalidProfileValue)
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := ParseProfileUpdate([]byte(`{}`))
		assert.ErrorIs(t, err, ErrEmptyProfileUpdate)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := ParseProfileUpdate([]byte(`["name"]`))
		assert.ErrorIs(t, err, ErrInvalidProfileValue)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := ParseProfileUpdate([]byte(`{"name":"  "}`))
		assert.ErrorIs(t, err, ErrInvalidProfileValue)
	})
}

func TestLevelPermits(t *testing.T) {
	for player := range categoryLevels {
		for match := range categoryLevels {
			assert.True(t, LevelPermits(player, match), "%s in a %s match", player, match)
		}
	}
	assert.True(t, LevelPermits("", "diamante"))
	assert.Equal(t, 1, CategoryLevel("unknown"))
	assert.False(t, KnownCategory("unknown"))
}
