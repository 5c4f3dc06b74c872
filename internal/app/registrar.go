package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/stellarforge/internal/config"
	"github.com/samvad-hq/stellarforge/internal/domain"
	"github.com/samvad-hq/stellarforge/internal/logger"
	"github.com/samvad-hq/stellarforge/internal/storage"
	"github.com/samvad-hq/stellarforge/pkg/mockapi"
	"github.com/samvad-hq/stellarforge/pkg/publishers"
	"github.com/samvad-hq/stellarforge/pkg/stellarforge"
)

// StarRegistrar is the SDK surface the runtime depends on.
type StarRegistrar interface {
	Register(ctx context.Context, name string, ra, dec float64, observedBy string) (stellarforge.Star, error)
}

// EventPublisher announces registrations downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// RegisterInput carries the flat arguments of a registration.
type RegisterInput struct {
	Name       string
	RA         float64
	Dec        float64
	ObservedBy string
}

// Registrar registers stars through the SDK, records them in the local
// ledger and announces them to the configured publishers.
type Registrar struct {
	client    StarRegistrar
	store     storage.Store
	publisher EventPublisher
	closers   []func() error
	log       logger.Logger
	now       func() time.Time
}

// NewRegistrar builds a registrar runtime from config.
func NewRegistrar(ctx context.Context, cfg *config.Config, log logger.Logger) (*Registrar, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := stellarforge.NewClient(cfg.APIKey,
		stellarforge.WithBaseURL(cfg.BaseURL),
		stellarforge.WithTimeout(cfg.Timeout),
		stellarforge.WithMockServer(newMockServer(cfg, log)),
		stellarforge.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("build stellarforge client: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg, log)
	if err != nil {
		_ = fanout.Close()
		return nil, err
	}

	r := newRegistrar(client, store, fanout, log)
	r.closers = append(r.closers, fanout.Close)
	return r, nil
}

// newRegistrar wires already-built dependencies.
func newRegistrar(client StarRegistrar, store storage.Store, pub EventPublisher, log logger.Logger) *Registrar {
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Registrar{
		client:    client,
		store:     store,
		publisher: pub,
		log:       log,
		now:       time.Now,
	}
}

// Register registers a star. SDK failures are returned as-is so callers can
// inspect their kind. A registered star is always returned even if recording
// or announcing it failed; those failures come back joined in the error.
func (r *Registrar) Register(ctx context.Context, in RegisterInput) (stellarforge.Star, error) {
	if r == nil || r.client == nil {
		return stellarforge.Star{}, fmt.Errorf("registrar is not initialized")
	}

	star, err := r.client.Register(ctx, in.Name, in.RA, in.Dec, in.ObservedBy)
	if err != nil {
		r.log.WarnObj("registration failed", "registration_error", map[string]any{
			"name":      in.Name,
			"kind":      stellarforge.KindOf(err).String(),
			"retryable": stellarforge.IsRetryable(err),
			"error":     err.Error(),
		})
		return stellarforge.Star{}, err
	}

	var errs []error
	if r.store != nil {
		reg := domain.Registration{Star: star, RecordedAt: r.now().UTC()}
		if err := r.store.SaveRegistration(reg); err != nil {
			r.log.ErrorObj("ledger write failed", "error", err)
			errs = append(errs, fmt.Errorf("record star %s: %w", star.ID, err))
		}
	}

	if r.publisher != nil {
		delivered, err := r.publisher.Publish(ctx, publishers.NewEvent(star))
		if err != nil {
			r.log.ErrorObj("event publish failed", "publish_error", map[string]any{
				"star_id":   star.ID,
				"delivered": delivered,
				"error":     err.Error(),
			})
			errs = append(errs, fmt.Errorf("publish star %s: %w", star.ID, err))
		} else if delivered > 0 {
			r.log.InfoObj("registration published", "publish_meta", map[string]any{
				"star_id":   star.ID,
				"delivered": delivered,
			})
		}
	}

	return star, errors.Join(errs...)
}

// Close releases the ledger and publisher connections.
func (r *Registrar) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, c := range r.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.log.ErrorObj("storage close failed", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// newMockServer configures the in-process API stand-in from config.
func newMockServer(cfg *config.Config, log logger.Logger) *mockapi.Server {
	opts := []mockapi.Option{mockapi.WithLogger(log)}
	if cfg.MockIDMode == "uuid" {
		opts = append(opts,
			mockapi.WithIDGenerator(mockapi.UUIDGenerator()),
			mockapi.WithClock(time.Now),
		)
	}
	if cfg.MockCheckDeclination {
		opts = append(opts, mockapi.WithDeclinationCheck())
	}
	return mockapi.New(opts...)
}

// buildFanout loads the publishers file, if one is configured.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// openStore opens the configured ledger backend.
func openStore(cfg *config.Config, log logger.Logger) (storage.Store, error) {
	storeOpts := storage.Options{
		RegistrationTTL: cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.StoragePath(), storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.DebugObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.StoragePath(),
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})
	return store, nil
}
