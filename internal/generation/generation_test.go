package generation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galenhq/galen-api/internal/generation"
)

func TestAppendUserTurn(t *testing.T) {
	t.Run("nil_history_yields_single_turn", func(t *testing.T) {
		turns := generation.AppendUserTurn(nil, "hello")

		require.Len(t, turns, 1)
		assert.Equal(t, generation.RoleUser, turns[0].Role)
		assert.Equal(t, "hello", turns[0].Text)
	})

	t.Run("empty_history_yields_single_turn", func(t *testing.T) {
		turns := generation.AppendUserTurn([]generation.Turn{}, "hello")

		require.Len(t, turns, 1)
		assert.Equal(t, generation.Turn{Role: generation.RoleUser, Text: "hello"}, turns[0])
	})

	t.Run("history_preserved_in_order", func(t *testing.T) {
		history := []generation.Turn{
			{Role: generation.RoleUser, Text: "first"},
			{Role: generation.RoleModel, Text: "second"},
			{Role: generation.RoleUser, Text: "third"},
		}

		turns := generation.AppendUserTurn(history, "newest")

		require.Len(t, turns, 4)
		assert.Equal(t, history, turns[:3])
		assert.Equal(t, generation.Turn{Role: generation.RoleUser, Text: "newest"}, turns[3])
	})

	t.Run("caller_slice_not_mutated", func(t *testing.T) {
		history := make([]generation.Turn, 1, 4) // spare capacity invites aliasing bugs
		history[0] = generation.Turn{Role: generation.RoleModel, Text: "kept"}

		turns := generation.AppendUserTurn(history, "new")
		turns[0].Text = "clobbered"

		assert.Equal(t, "kept", history[0].Text)
		assert.Len(t, history, 1)
	})
}

func TestCandidateError(t *testing.T) {
	t.Run("status_failure_message", func(t *testing.T) {
		err := &generation.CandidateError{
			Model:      "model-a",
			StatusCode: 429,
			Message:    "quota exceeded",
		}

		assert.Equal(t, `model "model-a" failed with status 429: quota exceeded`, err.Error())
	})

	t.Run("transport_failure_message", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &generation.CandidateError{Model: "model-a", Err: cause}

		assert.Contains(t, err.Error(), "connection refused")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("absent_content_unwraps_to_sentinel", func(t *testing.T) {
		err := &generation.CandidateError{Model: "model-a", Err: generation.ErrNoContent}

		assert.ErrorIs(t, err, generation.ErrNoContent)

		var candErr *generation.CandidateError
		require.ErrorAs(t, error(err), &candErr)
		assert.Equal(t, "model-a", candErr.Model)
	})
}
