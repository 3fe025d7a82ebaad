package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/befuji/studio-backend/internal/logger"
	"github.com/befuji/studio-backend/internal/pkg/apperror"
)

// ErrRecordNotFound возвращается при патче по неизвестному id.
var ErrRecordNotFound = errors.New("store: запись не найдена")

// ObjectStore описывает взаимодействие коллекции с объектным хранилищем.
type ObjectStore interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// Record - запись коллекции с строковым идентификатором.
type Record interface {
	RecordID() string
}

// ReorderPolicy определяет судьбу записей, чей id не попал в список сортировки.
type ReorderPolicy int

const (
	// ReorderDropMissing отбрасывает записи, отсутствующие в списке (проекты).
	ReorderDropMissing ReorderPolicy = iota
	// ReorderKeepMissing переносит отсутствующие записи в хвост (отзывы).
	ReorderKeepMissing
)

// Collection хранит весь массив записей одним JSON-документом в объектном
// хранилище и кэширует его в памяти процесса. Кэш наполняется при первом
// чтении и синхронно замещается при каждой записи; срока жизни у него нет.
//
// Мьютекс сериализует циклы read-modify-write внутри одного процесса, поэтому
// две параллельные мутации из этого инстанса не теряют изменений друг друга.
// Между инстансами защиты нет: запись идёт без compare-and-swap, и второй
// сервер перезапишет документ целиком по принципу last-writer-wins.
type Collection[T Record] struct {
	mu       sync.Mutex
	store    ObjectStore
	key      string
	seedPath string
	policy   ReorderPolicy
	cache    []T
	cached   bool
}

// NewCollection создаёт коллекцию, привязанную к одному ключу хранилища.
// seedPath - локальный файл с начальными данными на случай пустого бакета.
func NewCollection[T Record](store ObjectStore, key, seedPath string, policy ReorderPolicy) *Collection[T] {
	return &Collection[T]{
		store:    store,
		key:      key,
		seedPath: seedPath,
		policy:   policy,
	}
}

// Read возвращает текущий массив записей (копию, кэш не отдаётся наружу).
func (c *Collection[T]) Read(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(c.cache), nil
}

// Write полностью замещает массив записей.
func (c *Collection[T]) Write(ctx context.Context, records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(ctx, records)
}

// Append добавляет запись в конец массива и возвращает её без изменений.
func (c *Collection[T]) Append(ctx context.Context, record T) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return zero, err
	}

	next := append(slices.Clone(c.cache), record)
	if err := c.write(ctx, next); err != nil {
		return zero, err
	}
	return record, nil
}

// PatchByID накладывает частичное обновление на запись с указанным id.
// Неизвестный id - ErrRecordNotFound, массив при этом не меняется.
// Поле id через патч изменить нельзя.
func (c *Collection[T]) PatchByID(ctx context.Context, id string, fields map[string]any) (T, error) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return zero, err
	}

	idx := slices.IndexFunc(c.cache, func(r T) bool { return r.RecordID() == id })
	if idx == -1 {
		return zero, ErrRecordNotFound
	}

	merged, err := mergeFields(c.cache[idx], fields)
	if err != nil {
		return zero, fmt.Errorf("store: слияние полей записи %s: %w", id, err)
	}

	next := slices.Clone(c.cache)
	next[idx] = merged
	if err := c.write(ctx, next); err != nil {
		return zero, err
	}
	return merged, nil
}

// Reorder перестраивает массив по списку идентификаторов. Неизвестные id
// молча пропускаются; записи, не упомянутые в списке, обрабатываются
// согласно политике коллекции.
func (c *Collection[T]) Reorder(ctx context.Context, orderedIDs []string) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return nil, err
	}

	byID := make(map[string]T, len(c.cache))
	for _, r := range c.cache {
		byID[r.RecordID()] = r
	}

	next := make([]T, 0, len(c.cache))
	listed := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		listed[id] = true
		if r, ok := byID[id]; ok {
			next = append(next, r)
		}
	}

	if c.policy == ReorderKeepMissing {
		for _, r := range c.cache {
			if !listed[r.RecordID()] {
				next = append(next, r)
			}
		}
	}

	if err := c.write(ctx, next); err != nil {
		return nil, err
	}
	return slices.Clone(next), nil
}

// DeleteByID удаляет запись с указанным id. Отсутствующий id не считается
// ошибкой: массив перезаписывается как есть.
func (c *Collection[T]) DeleteByID(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(ctx); err != nil {
		return err
	}

	next := slices.DeleteFunc(slices.Clone(c.cache), func(r T) bool {
		return r.RecordID() == id
	})
	return c.write(ctx, next)
}

// load наполняет кэш: документ из хранилища, иначе локальный seed, иначе
// пустой массив. Вызывается под мьютексом.
func (c *Collection[T]) load(ctx context.Context) error {
	if c.cached {
		return nil
	}

	data, err := c.store.GetObject(ctx, c.key)
	switch {
	case err == nil:
		var records []T
		if uerr := json.Unmarshal(data, &records); uerr != nil {
			return fmt.Errorf("store: документ %s повреждён: %w", c.key, uerr)
		}
		c.cache = records
	case apperror.IsNotFound(err):
		c.cache = c.readSeed()
	default:
		return err
	}

	c.cached = true
	return nil
}

// readSeed читает локальный файл начальных данных. Любая проблема с файлом
// даёт пустую коллекцию.
func (c *Collection[T]) readSeed() []T {
	if c.seedPath == "" {
		return nil
	}

	data, err := os.ReadFile(c.seedPath)
	if err != nil {
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		logger.WithComponent("store").Warnf("seed файл %s не распарсился: %v", c.seedPath, err)
		return nil
	}
	return records
}

// write синхронно замещает кэш и перезаписывает документ целиком.
// Ошибка записи уходит вызывающему, ретраев нет. Вызывается под мьютексом.
func (c *Collection[T]) write(ctx context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}

	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: сериализация документа %s: %w", c.key, err)
	}

	c.cache = slices.Clone(records)
	c.cached = true

	if err := c.store.PutObject(ctx, c.key, body, "application/json"); err != nil {
		return err
	}
	return nil
}

// mergeFields накладывает патч на запись через JSON: запись разворачивается в
// map, именованные поля замещаются, результат сворачивается обратно в тип.
// Неизвестные поля при этом отбрасываются типом записи.
func mergeFields[T Record](record T, fields map[string]any) (T, error) {
	var out T

	raw, err := json.Marshal(record)
	if err != nil {
		return out, err
	}

	m := make(map[string]any)
	if err := json.Unmarshal(raw, &m); err != nil {
		return out, err
	}

	for k, v := range fields {
		if k == "id" {
			continue
		}
		m[k] = v
	}

	merged, err := json.Marshal(m)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(merged, &out); err != nil {
		return out, err
	}
	return out, nil
}
