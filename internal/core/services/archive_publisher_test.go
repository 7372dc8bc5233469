package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/drive_thru_order_app/internal/core/domain"
	"github.com/SscSPs/drive_thru_order_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock HistoryArchiver ---
type MockHistoryArchiver struct {
	mock.Mock
	mu    sync.Mutex
	saved []int
}

func (m *MockHistoryArchiver) SaveEntry(ctx context.Context, sessionID string, entry domain.HistoryEntry) error {
	args := m.Called(ctx, sessionID, entry)
	if args.Error(0) == nil {
		m.mu.Lock()
		m.saved = append(m.saved, entry.ID)
		m.mu.Unlock()
	}
	return args.Error(0)
}

func (m *MockHistoryArchiver) savedIDs() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.saved...)
}

const testSessionID = "5b0c7d4e-8f0a-4d7b-9f0e-6a1f3f0d2c11"

func TestArchivePublisher_WritesInOrderAndFlushesOnClose(t *testing.T) {
	archiver := new(MockHistoryArchiver)
	archiver.On("SaveEntry", mock.Anything, testSessionID, mock.Anything).Return(nil)

	publisher := services.NewArchivePublisher(archiver, testSessionID, 8, nil)
	for i := 1; i <= 5; i++ {
		publisher.Publish(domain.HistoryEntry{ID: i, ActionType: domain.ActionOrder})
	}

	done := make(chan struct{})
	go func() {
		publisher.Run(context.Background())
		close(done)
	}()
	publisher.Close()
	publisher.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Close")
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, archiver.savedIDs())
}

func TestArchivePublisher_DropsWhenBufferFull(t *testing.T) {
	archiver := new(MockHistoryArchiver)
	archiver.On("SaveEntry", mock.Anything, testSessionID, mock.Anything).Return(nil)

	publisher := services.NewArchivePublisher(archiver, testSessionID, 2, nil)
	for i := 1; i <= 4; i++ {
		publisher.Publish(domain.HistoryEntry{ID: i})
	}
	publisher.Close()
	publisher.Run(context.Background())

	assert.Equal(t, []int{1, 2}, archiver.savedIDs())
}

func TestArchivePublisher_ContinuesAfterSaveError(t *testing.T) {
	archiver := new(MockHistoryArchiver)
	archiver.On("SaveEntry", mock.Anything, testSessionID, mock.MatchedBy(func(e domain.HistoryEntry) bool { return e.ID == 1 })).
		Return(errors.New("connection refused"))
	archiver.On("SaveEntry", mock.Anything, testSessionID, mock.Anything).Return(nil)

	publisher := services.NewArchivePublisher(archiver, testSessionID, 4, nil)
	publisher.Publish(domain.HistoryEntry{ID: 1})
	publisher.Publish(domain.HistoryEntry{ID: 2})
	publisher.Close()
	publisher.Run(context.Background())

	assert.Equal(t, []int{2}, archiver.savedIDs())
	archiver.AssertNumberOfCalls(t, "SaveEntry", 2)
}

func TestArchivePublisher_ReceivesCommittedEntriesFromEngine(t *testing.T) {
	archiver := new(MockHistoryArchiver)
	archiver.On("SaveEntry", mock.Anything, testSessionID, mock.Anything).Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	publisher := services.NewArchivePublisher(archiver, testSessionID, 16, nil)
	done := make(chan struct{})
	go func() {
		publisher.Run(ctx)
		close(done)
	}()

	svc := services.NewOrderService(seededLedger(), services.WithEntryPublisher(publisher))
	_, err := svc.PlaceOrder(context.Background(), []domain.OrderLine{{ItemType: domain.Burger, Quantity: 1}})
	require.NoError(t, err)
	res, err := svc.CancelItems(context.Background(), domain.CancelRequest{CancelAll: true})
	require.NoError(t, err)
	require.Equal(t, domain.StatusSuccess, res.Status)
	// a rejected cancellation is never archived
	_, err = svc.CancelItems(context.Background(), domain.CancelRequest{CancelAll: true})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(archiver.savedIDs()) == 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, []int{1, 2}, archiver.savedIDs())
}
