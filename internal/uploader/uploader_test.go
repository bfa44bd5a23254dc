package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruchira-b/ETL-pipeline/internal/artifact"
	"github.com/ruchira-b/ETL-pipeline/internal/common"
	"github.com/ruchira-b/ETL-pipeline/internal/logging"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// fakeStore records puts and fails filenames listed in failSubstrings.
type fakeStore struct {
	mu             sync.Mutex
	puts           map[string][]byte
	metadata       map[string]map[string]string
	failSubstrings []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		puts:     make(map[string][]byte),
		metadata: make(map[string]map[string]string),
	}
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string, md map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.failSubstrings {
		if strings.Contains(key, s) {
			return fmt.Errorf("put %s: %w", key, common.ErrStoreUnavailable)
		}
	}
	f.puts[key] = data
	f.metadata[key] = md
	return nil
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]artifact.ObjectInfo, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Head(ctx context.Context, key string) (map[string]string, error) {
	return nil, errors.New("not implemented")
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func stubStorageIDs(t *testing.T) {
	t.Helper()
	orig := newStorageID
	var n int
	var mu sync.Mutex
	newStorageID = func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id%04d", n)
	}
	t.Cleanup(func() { newStorageID = orig })
}

func jpegItems(n int) []models.UploadItem {
	items := make([]models.UploadItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, models.UploadItem{
			Data:     []byte{0xFF, 0xD8},
			Filename: fmt.Sprintf("photo%03d.jpg", i),
		})
	}
	return items
}

func TestSubmit_AllSucceed(t *testing.T) {
	stubStorageIDs(t)
	store := newFakeStore()
	svc := NewService(store, testLogger(), Options{ProjectTag: "image-upload-test", Workers: 4})

	result, err := svc.Submit(context.Background(), jpegItems(3), "admin")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 0, result.Discarded)
	assert.Equal(t, 0, result.FailedCount)
	require.Len(t, result.SucceededKeys, 3)

	// Keys come back in input order regardless of write scheduling.
	for i, key := range result.SucceededKeys {
		assert.Contains(t, key, fmt.Sprintf("photo%03d.jpg", i))
		assert.True(t, strings.HasPrefix(key, "uploads/admin/"), "key %s", key)
	}

	// One durable write per item, with user metadata attached.
	assert.Len(t, store.puts, 3)
	for _, md := range store.metadata {
		assert.Equal(t, "admin", md["uploaded-by"])
		assert.Equal(t, "image-upload-test", md["project"])
	}
}

func TestSubmit_TruncatesOverLimit(t *testing.T) {
	stubStorageIDs(t)
	store := newFakeStore()
	svc := NewService(store, testLogger(), Options{Workers: 8})

	result, err := svc.Submit(context.Background(), jpegItems(52), "admin")
	require.NoError(t, err)

	assert.Equal(t, 50, result.Requested)
	assert.Equal(t, 2, result.Discarded)
	assert.Equal(t, 0, result.FailedCount)
	assert.Len(t, result.SucceededKeys, 50)
	// The excess never reached the store.
	assert.Len(t, store.puts, 50)
}

func TestSubmit_NoTruncationAtLimit(t *testing.T) {
	stubStorageIDs(t)
	store := newFakeStore()
	svc := NewService(store, testLogger(), Options{Workers: 8})

	result, err := svc.Submit(context.Background(), jpegItems(50), "admin")
	require.NoError(t, err)

	assert.Equal(t, 50, result.Requested)
	assert.Equal(t, 0, result.Discarded)
	assert.Equal(t, len(result.SucceededKeys)+result.FailedCount, result.Requested)
}

func TestSubmit_PerItemFailuresDoNotAbortBatch(t *testing.T) {
	stubStorageIDs(t)
	store := newFakeStore()
	store.failSubstrings = []string{"photo001.jpg", "photo003.jpg"}
	svc := NewService(store, testLogger(), Options{Workers: 2})

	result, err := svc.Submit(context.Background(), jpegItems(5), "admin")
	require.NoError(t, err)

	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.SucceededKeys, 3)
	assert.Equal(t, result.Requested, len(result.SucceededKeys)+result.FailedCount)

	// Failed items are excluded, survivors keep input order.
	joined := strings.Join(result.SucceededKeys, ",")
	assert.NotContains(t, joined, "photo001.jpg")
	assert.NotContains(t, joined, "photo003.jpg")
	assert.Less(t, strings.Index(joined, "photo000.jpg"), strings.Index(joined, "photo002.jpg"))
	assert.Less(t, strings.Index(joined, "photo002.jpg"), strings.Index(joined, "photo004.jpg"))
}

func TestSubmit_NilStoreFailsWholeBatch(t *testing.T) {
	svc := NewService(nil, testLogger(), Options{})

	result, err := svc.Submit(context.Background(), jpegItems(3), "admin")

	assert.ErrorIs(t, err, common.ErrConfiguration)
	assert.Empty(t, result.SucceededKeys)
}

func TestSubmit_ContentTypeInferredFromSuffix(t *testing.T) {
	stubStorageIDs(t)
	store := newFakeStore()

	var mu sync.Mutex
	types := make(map[string]string)
	wrapped := &typeRecordingStore{fakeStore: store, mu: &mu, types: types}
	svc := NewService(wrapped, testLogger(), Options{})

	items := []models.UploadItem{
		{Filename: "a.jpg"},
		{Filename: "b.jpeg"},
		{Filename: "c.png"},
		{Filename: "d.webp"},
	}
	_, err := svc.Submit(context.Background(), items, "admin")
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", typeFor(types, "a.jpg"))
	assert.Equal(t, "image/jpeg", typeFor(types, "b.jpeg"))
	assert.Equal(t, "image/png", typeFor(types, "c.png"))
	assert.Equal(t, "image/png", typeFor(types, "d.webp"))
}

type typeRecordingStore struct {
	*fakeStore
	mu    *sync.Mutex
	types map[string]string
}

func (s *typeRecordingStore) Put(ctx context.Context, key string, data []byte, contentType string, md map[string]string) error {
	s.mu.Lock()
	s.types[key] = contentType
	s.mu.Unlock()
	return s.fakeStore.Put(ctx, key, data, contentType, md)
}

func typeFor(types map[string]string, filename string) string {
	for key, ct := range types {
		if strings.Contains(key, filename) {
			return ct
		}
	}
	return ""
}

func TestKeyFor_DistinctForSameFilename(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, testLogger(), Options{})

	k1 := svc.keyFor("admin", "sunset.jpg")
	k2 := svc.keyFor("admin", "sunset.jpg")

	assert.NotEqual(t, k1, k2)
	assert.True(t, strings.HasSuffix(k1, "-sunset.jpg"))
}
