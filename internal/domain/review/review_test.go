package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	t.Run("creates review with valid rating", func(t *testing.T) {
		r, err := NewReview(uuid.New(), uuid.New(), "ada", 4, "good fit")
		require.NoError(t, err)

		assert.Equal(t, 4, r.Rating)
		assert.Equal(t, "good fit", r.Comment)
		assert.Equal(t, "ada", r.UserName)
	})

	t.Run("rejects rating below 1", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), "ada", 0, "")
		require.Error(t, err)
	})

	t.Run("rejects rating above 5", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), "ada", 6, "")
		require.Error(t, err)
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewReview(uuid.Nil, uuid.New(), "ada", 3, "")
		require.Error(t, err)
	})

	t.Run("rejects empty user", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.Nil, "ada", 3, "")
		require.Error(t, err)
	})
}

func TestReviewUpdate(t *testing.T) {
	r, err := NewReview(uuid.New(), uuid.New(), "ada", 3, "ok")
	require.NoError(t, err)

	t.Run("updates rating and comment", func(t *testing.T) {
		require.NoError(t, r.Update(5, "great after a wash"))
		assert.Equal(t, 5, r.Rating)
		assert.Equal(t, "great after a wash", r.Comment)
		assert.Equal(t, 2, r.GetVersion())
	})

	t.Run("rejects invalid rating and keeps old values", func(t *testing.T) {
		require.Error(t, r.Update(9, "broken"))
		assert.Equal(t, 5, r.Rating)
		assert.Equal(t, "great after a wash", r.Comment)
	})
}

func TestReviewOwnership(t *testing.T) {
	userID := uuid.New()
	r, err := NewReview(uuid.New(), userID, "ada", 3, "")
	require.NoError(t, err)

	assert.True(t, r.IsOwnedBy(userID))
	assert.False(t, r.IsOwnedBy(uuid.New()))
}
