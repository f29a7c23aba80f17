// Package store persists the parsed family list so a later session can
// reopen it without re-parsing the workbook.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ukaji3/recetario-go/internal/config"
	"github.com/ukaji3/recetario-go/pkg/recetario/models"
	"go.uber.org/zap"
)

// Key is the fixed key the family list is stored under.
const Key = "recetario:families"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no families stored")

// ErrDisabled is returned by every operation of the disabled store.
var ErrDisabled = errors.New("store disabled")

// Store saves and loads the family list verbatim.
type Store interface {
	Save(ctx context.Context, families []models.Family) error
	Load(ctx context.Context) ([]models.Family, error)
	Close() error
}

// New opens the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var (
		s   Store
		err error
	)
	switch cfg.Driver {
	case config.DriverNone, "":
		s = disabled{}
	case config.DriverMemory:
		s = NewMemoryStore()
	case config.DriverFile:
		s = NewFileStore(cfg.Path)
	case config.DriverRedis:
		s, err = NewRedisStore(ctx, cfg)
	case config.DriverPostgres:
		s, err = NewPostgresStore(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	log.Info("store ready", zap.String("driver", cfg.Driver))
	return s, nil
}

func encode(families []models.Family) ([]byte, error) {
	if families == nil {
		families = []models.Family{}
	}
	data, err := json.Marshal(families)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal families: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]models.Family, error) {
	var families []models.Family
	if err := json.Unmarshal(data, &families); err != nil {
		return nil, fmt.Errorf("failed to unmarshal families: %w", err)
	}
	return families, nil
}

type disabled struct{}

func (disabled) Save(context.Context, []models.Family) error { return ErrDisabled }
func (disabled) Load(context.Context) ([]models.Family, error) { return nil, ErrDisabled }
func (disabled) Close() error { return nil }
