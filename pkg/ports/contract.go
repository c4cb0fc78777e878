package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/cellfill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSequenceStoreContract runs a suite of tests to verify that a SequenceStore
// implementation adheres to the defined interface contract.
func RunSequenceStoreContract(t *testing.T, store SequenceStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID)
		snap.Cells = domain.Sequence{domain.Alive, domain.Alive, domain.Alive, domain.Life, domain.Dead}
		snap.Created = 4

		err := store.Save(ctx, sessionID, snap)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.Equal(t, snap.Cells, loaded.Cells)
		assert.Equal(t, 4, loaded.Created)
		assert.True(t, snap.StartedAt.Equal(loaded.StartedAt), "StartedAt should survive persistence")
	})

	t.Run("Isolation", func(t *testing.T) {
		snap := domain.NewSnapshot(sessionID)
		snap.Cells = domain.Sequence{domain.Dead}
		require.NoError(t, store.Save(ctx, sessionID, snap))

		// Mutating the caller's copy must not leak into the store.
		snap.Cells[0] = domain.Alive

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.Sequence{domain.Dead}, loaded.Cells)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSnapshot(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "Delete of a missing session is a no-op")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSnapshot(id1))
		_ = store.Save(ctx, id2, domain.NewSnapshot(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})

	t.Run("List Prefixed IDs", func(t *testing.T) {
		ids := []string{"tmp-" + sessionID, "index-" + sessionID}
		for _, id := range ids {
			require.NoError(t, store.Save(ctx, id, domain.NewSnapshot(id)))
		}
		defer func() {
			for _, id := range ids {
				_ = store.Delete(ctx, id)
			}
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		for _, id := range ids {
			assert.Contains(t, sessions, id)
		}
	})
}
