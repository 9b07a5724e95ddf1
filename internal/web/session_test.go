package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/simulador-financeiro/internal/logging"
	"github.com/Dan9191/simulador-financeiro/internal/utils"
)

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store := NewStore(utils.ModeThousands, 30*time.Minute)
	store.now = func() time.Time { return now }

	stale := store.Create()
	fresh := store.Create()
	assert.NotEqual(t, stale.ID, fresh.ID)

	now = now.Add(20 * time.Minute)
	require.NotNil(t, store.Get(fresh.ID))

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, store.Sweep())
	assert.Nil(t, store.Get(stale.ID))
	assert.NotNil(t, store.Get(fresh.ID))
}

func TestStore_FormUsesMode(t *testing.T) {
	store := NewStore(utils.ModeCents, time.Minute)
	sess := store.Create()
	assert.Equal(t, utils.ModeCents, sess.form.Mode())
}

func TestStartJanitor(t *testing.T) {
	store := NewStore(utils.ModeThousands, time.Minute)

	_, err := StartJanitor(store, "not a schedule", logging.Discard())
	assert.Error(t, err)

	c, err := StartJanitor(store, "@every 1h", logging.Discard())
	require.NoError(t, err)
	c.Stop()
}
