package export

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/dmitrymomot/qrshare/pkg/file"
)

// MemorySaver keeps the most recent download in memory. The HTTP transport
// uses one per request and streams the captured bytes as an attachment.
type MemorySaver struct {
	mu    sync.Mutex
	last  Download
	saved bool
	count int
}

func NewMemorySaver() *MemorySaver {
	return &MemorySaver{}
}

func (m *MemorySaver) Save(_ context.Context, d Download) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = d
	m.saved = true
	m.count++
	return nil
}

// Last returns the most recent download and whether there was one.
func (m *MemorySaver) Last() (Download, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last, m.saved
}

// Count returns the number of downloads saved so far.
func (m *MemorySaver) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// StorageSaver archives downloads into a file.Storage under dir. Object names
// are prefixed with a UTC timestamp so repeated exports never overwrite each
// other.
type StorageSaver struct {
	storage file.Storage
	dir     string
	now     func() time.Time
}

func NewStorageSaver(storage file.Storage, dir string) *StorageSaver {
	return &StorageSaver{storage: storage, dir: dir, now: time.Now}
}

func (s *StorageSaver) Save(ctx context.Context, d Download) error {
	name := fmt.Sprintf("%s_v%d_%s", s.now().UTC().Format("20060102T150405.000000000"), d.Version, d.Filename)
	_, err := s.storage.Save(ctx, file.Object{
		Name:        name,
		ContentType: d.ContentType,
		Data:        d.Data,
	}, path.Join(s.dir, name))
	return err
}

// MultiSaver saves to every saver in order and stops at the first failure.
type MultiSaver []Saver

func (m MultiSaver) Save(ctx context.Context, d Download) error {
	for i, s := range m {
		if s == nil {
			continue
		}
		if err := s.Save(ctx, d); err != nil {
			return errors.Join(fmt.Errorf("saver %d", i), err)
		}
	}
	return nil
}
