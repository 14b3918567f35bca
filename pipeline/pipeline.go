package pipeline

import (
	"sync"

	"github.com/kbukum/filterkit/filter"
	"github.com/kbukum/filterkit/httpsink"
)

// Pipeline is an ordered chain of filters ending in a sink, exposed as a
// single callable entry point. The chain is fixed once built; Add swaps
// in a new entry point wrapping the current one.
type Pipeline struct {
	mu    sync.RWMutex
	entry filter.Next
}

// New builds a pipeline from a sink and zero or more filters. The first
// filter is nearest the sink, the last nearest the caller.
func New(sink filter.Next, filters ...filter.Filter) *Pipeline {
	if sink == nil {
		panic("pipeline: nil sink passed to New")
	}
	return &Pipeline{entry: filter.Fold(sink, filters...)}
}

// NewDefault builds a pipeline terminating in the shared default network
// sink (see httpsink.Default).
func NewDefault(filters ...filter.Filter) *Pipeline {
	return New(httpsink.Default().Do, filters...)
}

// Run invokes the pipeline with canonical options. Its signature matches
// filter.Next, so Run can serve as the sink of another pipeline.
func (p *Pipeline) Run(opts *filter.Options, cb filter.Callback) filter.Stream {
	if opts.Headers == nil {
		opts.Headers = make(map[string]string)
	}
	p.mu.RLock()
	entry := p.entry
	p.mu.RUnlock()
	return entry(opts, cb)
}

// Add extends the pipeline: each added filter wraps the current entry
// point and becomes more caller-facing than everything already present,
// exactly as if it had been the last argument to New. Run reads the
// entry point per invocation, so references to it cached before Add
// (including pipelines using Run as their sink) observe the extension.
func (p *Pipeline) Add(filters ...filter.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entry = filter.Fold(p.entry, filters...)
}
