package logging

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/furrykids-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPGHandler_PersistsErrorsOnly(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewPGHandler(db, time.Hour)
	defer h.Stop()

	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored")
	logger.Error("interaction failed", "user_id", uint(4), "pet_id", 9, "action", "interact", "error", "boom", "latency_ms", 12.6, "path", "/api/pets/9")
	h.Flush()

	var rows []models.SystemLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, "ERROR", got.Level)
	assert.Equal(t, "req-1", got.RequestID)
	require.NotNil(t, got.UserID)
	assert.Equal(t, uint(4), *got.UserID)
	require.NotNil(t, got.PetID)
	assert.Equal(t, uint(9), *got.PetID)
	assert.Equal(t, "interact", got.Action)
	assert.Equal(t, "boom", got.Error)
	assert.Equal(t, 13, got.LatencyMs)
	assert.JSONEq(t, `{"path":"/api/pets/9"}`, string(got.Extra))
}

func TestPurgeOlderThan(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewPGHandler(db, time.Hour)
	defer h.Stop()

	slog.New(h).Error("old")
	h.Flush()
	require.NoError(t, db.Model(&models.SystemLog{}).Where("1 = 1").
		Update("timestamp", time.Now().Add(-40*24*time.Hour)).Error)
	slog.New(h).Error("fresh")
	h.Flush()

	deleted, err := PurgeOlderThan(db, time.Now().Add(-logRetention))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	db.Model(&models.SystemLog{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMultiHandler_FansOut(t *testing.T) {
	db := testutil.NewDB(t)
	pg := NewPGHandler(db, time.Hour)
	defer pg.Stop()

	var buf syncBuffer
	logger := slog.New(NewMultiHandler(NewStdoutHandler(&buf, slog.LevelInfo), pg))
	logger.Info("hello")
	logger.Error("bad")
	pg.Flush()

	assert.Contains(t, buf.String(), `"msg":"hello"`)
	assert.Contains(t, buf.String(), `"msg":"bad"`)

	var count int64
	db.Model(&models.SystemLog{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
