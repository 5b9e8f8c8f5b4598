package persistence

import (
	"context"
	"time"

	"task-editor/internal/domain"
	"task-editor/internal/errors"
	"task-editor/internal/logging"
)

// DefaultKey is the key the collection is stored under unless configured.
const DefaultKey = "tasks"

// Bridge loads and saves the whole task collection under one key.
type Bridge struct {
	store   BlobStore
	key     string
	codec   *Codec
	timeout time.Duration
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithTimeout bounds every store call. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) BridgeOption {
	return func(b *Bridge) {
		b.timeout = d
	}
}

// NewBridge creates a bridge over store. An empty key uses DefaultKey.
func NewBridge(store BlobStore, key string, opts ...BridgeOption) (*Bridge, error) {
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	if key == "" {
		key = DefaultKey
	}
	b := &Bridge{store: store, key: key, codec: codec}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Bridge) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

// Key returns the key the collection lives under.
func (b *Bridge) Key() string {
	return b.key
}

// Load reads the stored collection. A key that was never written yields an
// empty collection. A blob that cannot be decoded yields a corrupt data error
// and is left in place.
func (b *Bridge) Load(ctx context.Context) ([]domain.Task, error) {
	storeCtx, cancel := b.withTimeout(ctx)
	defer cancel()

	value, ok, err := b.store.Get(storeCtx, b.key)
	if err != nil {
		return nil, errors.FromStorage("load tasks", err)
	}
	if !ok {
		logging.FromContext(ctx).Debug("no stored tasks", "key", b.key)
		return []domain.Task{}, nil
	}

	tasks, err := b.codec.Decode(value)
	if err != nil {
		return nil, errors.NewCorruptDataError(b.key, err)
	}

	logging.FromContext(ctx).Debug("loaded tasks", "key", b.key, "count", len(tasks))
	return tasks, nil
}

// Save writes the full collection, replacing whatever was stored before.
func (b *Bridge) Save(ctx context.Context, tasks []domain.Task) error {
	value, err := b.codec.Encode(tasks)
	if err != nil {
		return errors.NewStorageError("encode tasks", err)
	}
	storeCtx, cancel := b.withTimeout(ctx)
	defer cancel()

	if err := b.store.Set(storeCtx, b.key, value); err != nil {
		return errors.FromStorage("save tasks", err)
	}
	return nil
}
