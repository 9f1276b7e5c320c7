package processor

import (
	"github.com/nguyentantai21042004/summary-flow/internal/cache"
	"github.com/nguyentantai21042004/summary-flow/internal/config"
	"github.com/nguyentantai21042004/summary-flow/internal/logger"
	"github.com/nguyentantai21042004/summary-flow/internal/textgen"
	"github.com/nguyentantai21042004/summary-flow/internal/transcript"
)

type implProcessor struct {
	cfg    *config.Config
	client textgen.Client
	cache  cache.Cache
	source transcript.Source
	logger logger.Logger
}

// New creates a new Processor instance. The cache is shared across all files
// handled by this processor so repeated content is summarized once.
func New(cfg *config.Config, client textgen.Client, store cache.Cache, source transcript.Source, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		client: client,
		cache:  store,
		source: source,
		logger: log,
	}
}
