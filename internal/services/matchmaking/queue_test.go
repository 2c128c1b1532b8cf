package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pduel/puzzleduel/internal/model"
	"github.com/pduel/puzzleduel/internal/testutil"
)

func player(id, conn string) model.Player {
	return model.Player{
		ID:           model.PlayerID(id),
		Name:         id,
		ConnectionID: model.ConnectionID(conn),
	}
}

func TestDequeueHeadEmpty(t *testing.T) {
	q := New(testutil.NopLogger())

	_, ok := q.DequeueHead()
	assert.False(t, ok)
}

func TestFIFOOrdering(t *testing.T) {
	q := New(testutil.NopLogger())
	q.Enqueue(player("a", "c1"))
	q.Enqueue(player("b", "c2"))
	q.Enqueue(player("c", "c3"))

	first, ok := q.DequeueHead()
	require.True(t, ok)
	assert.Equal(t, model.PlayerID("a"), first.ID)

	second, ok := q.DequeueHead()
	require.True(t, ok)
	assert.Equal(t, model.PlayerID("b"), second.ID)

	assert.Equal(t, 1, q.Len())
}

func TestDuplicateEnqueueRefreshesInPlace(t *testing.T) {
	q := New(testutil.NopLogger())
	q.Enqueue(player("a", "c1"))
	q.Enqueue(player("b", "c2"))

	// Same player rejoins on a new connection; FIFO position is kept
	q.Enqueue(player("a", "c9"))
	assert.Equal(t, 2, q.Len())

	head, ok := q.DequeueHead()
	require.True(t, ok)
	assert.Equal(t, model.PlayerID("a"), head.ID)
	assert.Equal(t, model.ConnectionID("c9"), head.ConnectionID)
}

func TestRemoveByPlayerID(t *testing.T) {
	q := New(testutil.NopLogger())
	q.Enqueue(player("a", "c1"))
	q.Enqueue(player("b", "c2"))

	q.RemoveByPlayerID("a")
	assert.Equal(t, 1, q.Len())

	head, ok := q.DequeueHead()
	require.True(t, ok)
	assert.Equal(t, model.PlayerID("b"), head.ID)
}

func TestRemoveByPlayerIDAbsentIsNoop(t *testing.T) {
	q := New(testutil.NopLogger())
	q.Enqueue(player("a", "c1"))

	q.RemoveByPlayerID("zzz")
	assert.Equal(t, 1, q.Len())
}

func TestRemoveByConnectionID(t *testing.T) {
	q := New(testutil.NopLogger())
	q.Enqueue(player("a", "c1"))
	q.Enqueue(player("b", "c2"))

	q.RemoveByConnectionID("c2")
	assert.Equal(t, 1, q.Len())

	q.RemoveByConnectionID("unknown")
	assert.Equal(t, 1, q.Len())
}
