package pepper

import (
	"sync"

	"go.uber.org/zap"

	"github.com/hasbyte1/securitykit/config"
)

// Pipeline resolves, caches, and applies pepper strategies.
//
// Strategies are memoized by a normalized, order-independent snapshot of
// the PEPPER_* entries of the configuration source: repeated calls with an
// equivalent configuration reuse one built strategy, and changing any
// pepper key produces a new snapshot and therefore a fresh build.
//
// A Pipeline is safe for concurrent use and may be shared across any number
// of hasher façades.  Racing first builds for the same snapshot are
// idempotent; the worst case is one redundant construction.
type Pipeline struct {
	log   *zap.Logger
	cache sync.Map // snapshot string → Strategy
}

// NewPipeline returns a Pipeline logging through log (nil discards).
func NewPipeline(log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{log: log}
}

// Apply transforms password according to the pepper configuration found in
// src.  It never fails: any error while resolving or building the strategy
// is logged and the identity transform is used instead, because a broken
// pepper configuration must not abort hashing.  An empty password passes
// through untouched.
func (p *Pipeline) Apply(password string, src config.Source) string {
	if password == "" || src == nil {
		return password
	}
	return p.strategy(src).Apply(password)
}

// Strategy returns the cached (or freshly built) strategy for the pepper
// configuration in src, falling back to noop on any failure.
func (p *Pipeline) strategy(src config.Source) Strategy {
	snap := config.Snapshot(src, Prefix)
	if cached, ok := p.cache.Load(snap); ok {
		return cached.(Strategy)
	}

	strategy := p.build(src)
	actual, _ := p.cache.LoadOrStore(snap, strategy)
	return actual.(Strategy)
}

func (p *Pipeline) build(src config.Source) Strategy {
	var cfg Config
	builder := config.NewBuilder(src, nil, p.log)
	if err := builder.Build(&cfg, Prefix, "pepper config"); err != nil {
		p.log.Error("pepper config invalid, falling back to noop", zap.Error(err))
		return Noop()
	}
	strategy, err := Build(cfg, p.log)
	if err != nil {
		p.log.Error("pepper strategy failure, falling back to noop", zap.Error(err))
		return Noop()
	}
	return strategy
}
