package levelpanel

import (
	"log/slog"

	"github.com/cloudcopper/levelpanel/domain/errors"
	"github.com/cloudcopper/levelpanel/domain/models"
	"github.com/cloudcopper/levelpanel/ports"
	"github.com/goccy/go-json"
)

// DefaultStoreKey is the store key of the persistence record
const DefaultStoreKey = "clpp_loggers"

// PersistenceCodec reads and writes the ControlState
// as single record of the store
type PersistenceCodec struct {
	log   ports.Logger
	store ports.Store
	key   string
}

func NewPersistenceCodec(log ports.Logger, store ports.Store, key string) *PersistenceCodec {
	if key == "" {
		key = DefaultStoreKey
	}
	log = log.With(slog.String("entity", "PersistenceCodec"), slog.String("key", key))
	c := &PersistenceCodec{
		log:   log,
		store: store,
		key:   key,
	}
	return c
}

func (c *PersistenceCodec) Key() string {
	return c.key
}

// Load returns the stored record and true, meaning persistence was enabled.
// If there is no record it returns nil and false.
// The record which can not be parsed is deleted
// and reported same way as missing one.
func (c *PersistenceCodec) Load() (*models.Record, bool) {
	data, ok, err := c.store.Get(c.key)
	if err != nil {
		c.log.Error("unable to read record", slog.Any("err", err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	record, err := c.Decode(data)
	if err != nil {
		c.log.Warn("purge corrupt record", slog.Any("err", errors.ErrCorruptRecord{Key: c.key, Err: err}))
		if err := c.store.Delete(c.key); err != nil {
			c.log.Error("unable to delete record", slog.Any("err", err))
		}
		return nil, false
	}

	c.log.Debug("record loaded", slog.Int("loggers", len(record.Loggers)))
	return record, true
}

// Save stores state if enabled, otherwise deletes the record
func (c *PersistenceCodec) Save(state *models.ControlState, enabled bool) error {
	if !enabled {
		return c.store.Delete(c.key)
	}

	data, err := c.Encode(state)
	if err != nil {
		return err
	}
	return c.store.Set(c.key, data)
}

func (c *PersistenceCodec) Encode(state *models.ControlState) (string, error) {
	blob, err := json.Marshal(models.NewRecord(state))
	if err != nil {
		return "", err
	}
	return string(blob), nil
}

func (c *PersistenceCodec) Decode(data string) (*models.Record, error) {
	var record *models.Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.ErrRecordNotObject
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
