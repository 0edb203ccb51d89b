package testhelpers

import (
	"context"
	"sync"

	"github.com/Dhaval523/WorkJunction/internal/storage"
	"github.com/stretchr/testify/mock"
)

// MockUploader is a testify mock of storage.Uploader.
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, folder storage.Folder, file storage.File) (string, error) {
	args := m.Called(ctx, folder, file)
	return args.String(0), args.Error(1)
}

// MockSender is a testify mock of sms.Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// RecordingSender keeps every message it is asked to send.
type RecordingSender struct {
	mu       sync.Mutex
	Messages []SentMessage
}

type SentMessage struct {
	To   string
	Body string
}

func (r *RecordingSender) Send(_ context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, SentMessage{To: to, Body: body})
	return nil
}

func (r *RecordingSender) Last() SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return SentMessage{}
	}
	return r.Messages[len(r.Messages)-1]
}

// CountingLimiter allows the first Max calls per key.
type CountingLimiter struct {
	mu     sync.Mutex
	Max    int
	counts map[string]int
}

func (l *CountingLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.counts == nil {
		l.counts = make(map[string]int)
	}
	l.counts[key]++
	return l.counts[key] <= l.Max, nil
}
