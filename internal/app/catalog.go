package app

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/stellarforge/internal/config"
	"github.com/samvad-hq/stellarforge/internal/domain"
	"github.com/samvad-hq/stellarforge/internal/logger"
	"github.com/samvad-hq/stellarforge/internal/storage"
)

// Catalog reads the local ledger of registered stars.
type Catalog struct {
	store storage.Store
	log   logger.Logger
}

// NewCatalog opens the ledger configured in cfg.
func NewCatalog(cfg *config.Config, log logger.Logger) (*Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	store, err := openStore(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Catalog{store: store, log: log}, nil
}

// List returns every recorded registration, oldest first.
func (c *Catalog) List() ([]domain.Registration, error) {
	regs, err := c.store.Registrations()
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// Get returns the registration for a star ID.
func (c *Catalog) Get(id string) (domain.Registration, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Registration{}, fmt.Errorf("star id is empty")
	}
	reg, found, err := c.store.Registration(id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("lookup star %s: %w", id, err)
	}
	if !found {
		return domain.Registration{}, fmt.Errorf("star %s: %w", id, ErrStarNotFound)
	}
	return reg, nil
}

// Close closes the ledger, logging any errors encountered.
func (c *Catalog) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		c.log.ErrorObj("storage close failed", "error", err)
		return err
	}
	return nil
}
