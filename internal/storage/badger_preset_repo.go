package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
)

const presetPrefix = "preset:"

// Первый байт значения: формат записи
const (
	encodingJSON byte = 'j'
	encodingZstd byte = 'z'
)

// BadgerOption настраивает BadgerPresetRepo
type BadgerOption func(*BadgerPresetRepo)

// WithCompression включает или отключает сжатие новых записей.
// Чтение понимает оба формата независимо от настройки.
func WithCompression(enabled bool) BadgerOption {
	return func(r *BadgerPresetRepo) { r.compress = enabled }
}

// BadgerPresetRepo хранит пресеты в BadgerDB в виде JSON, сжатого zstd.
type BadgerPresetRepo struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool

	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	logger   *logging.Logger
	now      func() time.Time
}

// NewBadgerPresetRepo открывает (или создаёт) хранилище в каталоге dataPath/presets.
func NewBadgerPresetRepo(dataPath string, opts ...BadgerOption) (*BadgerPresetRepo, error) {
	dbPath := filepath.Join(dataPath, "presets")
	dbOpts := badger.DefaultOptions(dbPath)
	dbOpts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	logger := logging.GetStorageLogger()
	logger.Debug("BadgerDB открыт: %s", dbPath)

	r := &BadgerPresetRepo{
		db:       db,
		dbPath:   dbPath,
		isReady:  true,
		compress: true,
		encoder:  encoder,
		decoder:  decoder,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Close закрывает хранилище данных
func (r *BadgerPresetRepo) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.isReady {
		return nil
	}

	r.isReady = false
	r.decoder.Close()
	_ = r.encoder.Close()
	return r.db.Close()
}

// Save сохраняет пресет
func (r *BadgerPresetRepo) Save(ctx context.Context, p Preset) error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	p.SavedAt = r.now().UTC()
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("ошибка сериализации пресета: %w", err)
	}
	value := r.encode(data)

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(presetKey(p.Name), value)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	r.logger.Debug("Preset %q saved (%d -> %d bytes)", p.Name, len(data), len(value))
	return nil
}

// Load загружает пресет
func (r *BadgerPresetRepo) Load(ctx context.Context, name string) (Preset, error) {
	if err := ctx.Err(); err != nil {
		return Preset{}, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.isReady {
		return Preset{}, fmt.Errorf("хранилище не готово")
	}

	var value []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(presetKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = append([]byte{}, val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	data, err := r.decode(value)
	if err != nil {
		return Preset{}, fmt.Errorf("ошибка распаковки пресета %q: %w", name, err)
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("ошибка десериализации пресета %q: %w", name, err)
	}
	return p, nil
}

// Delete удаляет пресет
func (r *BadgerPresetRepo) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(presetKey(name))
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления из BadgerDB: %w", err)
	}
	return nil
}

// List возвращает имена всех пресетов
func (r *BadgerPresetRepo) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if !r.isReady {
		return nil, fmt.Errorf("хранилище не готово")
	}

	var names []string
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(presetPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			names = append(names, strings.TrimPrefix(key, presetPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func presetKey(name string) []byte {
	return []byte(presetPrefix + name)
}

func (r *BadgerPresetRepo) encode(data []byte) []byte {
	if !r.compress {
		return append([]byte{encodingJSON}, data...)
	}
	return r.encoder.EncodeAll(data, []byte{encodingZstd})
}

func (r *BadgerPresetRepo) decode(value []byte) ([]byte, error) {
	if len(value) == 0 {
		return nil, fmt.Errorf("пустая запись")
	}
	switch value[0] {
	case encodingJSON:
		return value[1:], nil
	case encodingZstd:
		return r.decoder.DecodeAll(value[1:], nil)
	default:
		return nil, fmt.Errorf("неизвестный формат записи 0x%02x", value[0])
	}
}
