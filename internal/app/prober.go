package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/placeholder-client/internal/config"
	"github.com/samvad-hq/placeholder-client/internal/logger"
	"github.com/samvad-hq/placeholder-client/internal/prober"
	"github.com/samvad-hq/placeholder-client/internal/storage"
	"github.com/samvad-hq/placeholder-client/pkg/checks"
	"github.com/samvad-hq/placeholder-client/pkg/placeholder"
	"github.com/samvad-hq/placeholder-client/pkg/publishers"
)

// Prober is the smoke-check runtime. It runs the check suite on an interval,
// remembers the last status of each check and publishes transitions.
type Prober struct {
	cfg      *config.Config
	suite    *checks.Suite
	fanout   *publishers.Fanout
	service  *prober.Service
	interval time.Duration
	log      logger.Logger
	store    storage.Store
}

// NewProber builds a prober runtime from config.
func NewProber(ctx context.Context, cfg *config.Config, log logger.Logger) (*Prober, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	suite, err := loadSuite(cfg.ChecksFile)
	if err != nil {
		return nil, fmt.Errorf("load checks: %w", err)
	}
	ids := make([]string, 0, suite.Len())
	for _, c := range suite.All() {
		ids = append(ids, c.ID)
	}
	log.InfoObj("check suite loaded", "checks_meta", map[string]any{
		"count": len(ids),
		"ids":   ids,
		"file":  cfg.ChecksFile,
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{
		TTL:             cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	})
	if err != nil {
		if fanout != nil {
			_ = fanout.Close()
		}
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	client := placeholder.New(
		placeholder.WithBaseURL(cfg.APIBaseURL),
		placeholder.WithTimeout(cfg.APITimeout),
		placeholder.WithLogger(log),
	)
	if cfg.APIAuthToken != "" {
		client.SetAuthToken(cfg.APIAuthToken)
	}

	var pub prober.EventPublisher
	if fanout != nil {
		pub = fanout
	}

	return &Prober{
		cfg:      cfg,
		suite:    suite,
		fanout:   fanout,
		service:  prober.NewService(prober.NewRunner(client), pub, log, store),
		interval: cfg.ProbeInterval,
		log:      log,
		store:    store,
	}, nil
}

func loadSuite(path string) (*checks.Suite, error) {
	if path == "" {
		return checks.DefaultSuite(), nil
	}
	return checks.LoadSuite(path)
}

// buildFanout returns nil when no publishers file is configured.
func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		log.InfoObj("no publishers file configured; status changes are only logged", "publishers_file", path)
		return nil, nil
	}

	reg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}
	enabled := reg.Enabled()
	if len(enabled) == 0 {
		log.WarnObj("publishers file has no enabled publishers", "publishers_file", path)
		return nil, nil
	}

	clients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(clients), nil
}

// Run probes immediately and then on every interval until ctx is cancelled.
func (p *Prober) Run(ctx context.Context) error {
	if p == nil || p.service == nil {
		return fmt.Errorf("prober is not initialized")
	}
	defer p.Close()

	p.log.InfoObj("prober loop starting", "prober_state", map[string]any{
		"checks_count":     p.suite.Len(),
		"publishers_count": p.fanout.Size(),
		"probe_interval":   p.interval.String(),
	})

	if _, err := p.runOnce(ctx); err != nil {
		p.log.ErrorObj("initial probe failed", "error", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.InfoObj("prober loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if _, err := p.runOnce(ctx); err != nil {
				p.log.ErrorObj("scheduled probe failed", "error", err)
			}
		}
	}
}

// RunOnce runs the suite a single time and releases resources.
func (p *Prober) RunOnce(ctx context.Context) (prober.Summary, error) {
	if p == nil || p.service == nil {
		return prober.Summary{}, fmt.Errorf("prober is not initialized")
	}
	defer p.Close()
	return p.runOnce(ctx)
}

func (p *Prober) runOnce(ctx context.Context) (prober.Summary, error) {
	start := time.Now()
	sum, err := p.service.Run(ctx, p.suite.All())
	fields := map[string]any{
		"total":      sum.Total,
		"passed":     sum.Passed,
		"failed":     sum.Failed,
		"changed":    sum.Changed,
		"published":  sum.Published,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}
	if sum.Failed > 0 {
		p.log.WarnObj("probe completed with failures", "probe_summary", fields)
	} else {
		p.log.InfoObj("probe completed", "probe_summary", fields)
	}
	return sum, err
}

// Close releases the store and publishers. It is safe to call twice.
func (p *Prober) Close() error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			p.log.ErrorObj("storage close failed", "error", err)
			errs = append(errs, err)
		}
		p.store = nil
	}
	if p.fanout != nil {
		if err := p.fanout.Close(); err != nil {
			p.log.ErrorObj("publisher close failed", "error", err)
			errs = append(errs, err)
		}
		p.fanout = nil
	}
	return errors.Join(errs...)
}
