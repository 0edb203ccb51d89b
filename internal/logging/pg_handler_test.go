package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Dhaval523/WorkJunction/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	mu   sync.Mutex
	rows []models.SystemLog
}

func (w *captureWriter) WriteLogs(batch []models.SystemLog) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rows = append(w.rows, batch...)
	return nil
}

func (w *captureWriter) snapshot() []models.SystemLog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]models.SystemLog(nil), w.rows...)
}

func TestPGHandlerKeepsOnlyErrors(t *testing.T) {
	w := &captureWriter{}
	h := NewBatchHandler(w, time.Hour)
	defer h.Stop()

	logger := slog.New(h)
	logger.Info("ignored")
	logger.Error("upload failed", "worker_id", "w-1", "error", "timeout", "folder", "aadhar_documents")
	h.Flush()

	rows := w.snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, "upload failed", rows[0].Message)
	assert.Equal(t, "ERROR", rows[0].Level)
	require.NotNil(t, rows[0].WorkerID)
	assert.Equal(t, "w-1", *rows[0].WorkerID)
	assert.Equal(t, "timeout", rows[0].Error)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(rows[0].Extra, &extra))
	assert.Equal(t, "aadhar_documents", extra["folder"])
}

func TestPGHandlerAppliesBoundAttrs(t *testing.T) {
	w := &captureWriter{}
	h := NewBatchHandler(w, time.Hour)
	defer h.Stop()

	slog.New(h).With("request_id", "req-9").Error("boom")
	h.Flush()

	rows := w.snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, "req-9", rows[0].RequestID)
}

func TestPGHandlerStopFlushes(t *testing.T) {
	w := &captureWriter{}
	h := NewBatchHandler(w, time.Hour)

	slog.New(h).Error("last words")
	h.Stop()
	h.Stop()

	assert.Eventually(t, func() bool { return len(w.snapshot()) == 1 }, time.Second, 10*time.Millisecond)
}

type failingHandler struct{}

func (failingHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }
func (h failingHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h failingHandler) WithGroup(string) slog.Handler           { return h }

func TestMultiHandlerContinuesPastFailure(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiHandler(failingHandler{}, slog.NewJSONHandler(&buf, nil))

	err := m.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0))

	assert.EqualError(t, err, "sink down")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
