package summarizer

import (
	"sync/atomic"

	"github.com/nguyentantai21042004/summary-flow/internal/cache"
	"github.com/nguyentantai21042004/summary-flow/internal/config"
	"github.com/nguyentantai21042004/summary-flow/internal/logger"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
)

type implPipeline struct {
	cfg      *config.Config
	client   textgen.Client
	cache    cache.Cache
	logger   logger.Logger
	progress ProgressSink
	state    atomic.Int32
}

// Option customizes a Pipeline.
type Option func(*implPipeline)

// WithProgress attaches a progress sink. Defaults to NopProgress.
func WithProgress(sink ProgressSink) Option {
	return func(p *implPipeline) {
		p.progress = sink
	}
}

// New creates a Pipeline instance.
func New(cfg *config.Config, client textgen.Client, store cache.Cache, log logger.Logger, opts ...Option) Pipeline {
	p := &implPipeline{
		cfg:      cfg,
		client:   client,
		cache:    store,
		logger:   log,
		progress: NopProgress{},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// State implements Pipeline.
func (p *implPipeline) State() State {
	return State(p.state.Load())
}

func (p *implPipeline) setState(s State) {
	p.state.Store(int32(s))
}
