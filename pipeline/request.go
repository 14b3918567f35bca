package pipeline

import (
	"net/http"

	"github.com/kbukum/filterkit/filter"
)

// MethodMerge is the OData MERGE verb, not covered by net/http constants.
const MethodMerge = "MERGE"

// Do invokes the pipeline with loosely shaped arguments. Accepted shapes:
//
//	Do(uri string, opts *filter.Options, cb filter.Callback)
//	Do(opts *filter.Options, cb filter.Callback)   // opts.URI already set
//	Do(uri string, cb filter.Callback)
//
// Any other shape returns *InvalidArgumentsError without invoking the
// chain. The callback may also be given as a bare
// func(error, any, *filter.Response, []byte).
func (p *Pipeline) Do(args ...any) (filter.Stream, error) {
	opts, cb, err := normalize(args)
	if err != nil {
		return nil, err
	}
	return p.Run(opts, cb), nil
}

// Get invokes the pipeline with the method forced to GET. Arguments are
// normalized exactly as in Do.
func (p *Pipeline) Get(args ...any) (filter.Stream, error) {
	return p.verb(http.MethodGet, args)
}

// Post invokes the pipeline with the method forced to POST.
func (p *Pipeline) Post(args ...any) (filter.Stream, error) {
	return p.verb(http.MethodPost, args)
}

// Put invokes the pipeline with the method forced to PUT.
func (p *Pipeline) Put(args ...any) (filter.Stream, error) {
	return p.verb(http.MethodPut, args)
}

// Delete invokes the pipeline with the method forced to DELETE.
func (p *Pipeline) Delete(args ...any) (filter.Stream, error) {
	return p.verb(http.MethodDelete, args)
}

// Merge invokes the pipeline with the method forced to MERGE.
func (p *Pipeline) Merge(args ...any) (filter.Stream, error) {
	return p.verb(MethodMerge, args)
}

// Head invokes the pipeline with the method forced to HEAD.
func (p *Pipeline) Head(args ...any) (filter.Stream, error) {
	return p.verb(http.MethodHead, args)
}

// verb normalizes args, pins the method, and invokes the current entry
// point. Verb helpers are sugar over Run, not separate pipelines.
func (p *Pipeline) verb(method string, args []any) (filter.Stream, error) {
	opts, cb, err := normalize(args)
	if err != nil {
		return nil, err
	}
	opts.Method = method
	return p.Run(opts, cb), nil
}

// normalize folds the accepted call shapes into a canonical
// (options, callback) pair with a non-nil header map.
func normalize(args []any) (*filter.Options, filter.Callback, error) {
	var opts *filter.Options
	var cb filter.Callback

	switch len(args) {
	case 2:
		switch first := args[0].(type) {
		case string:
			opts = filter.NewOptions(first)
		case *filter.Options:
			if first == nil || first.URI == "" {
				return nil, nil, &InvalidArgumentsError{Args: args}
			}
			opts = first
		default:
			return nil, nil, &InvalidArgumentsError{Args: args}
		}
		cb = asCallback(args[1])
	case 3:
		uri, ok := args[0].(string)
		if !ok {
			return nil, nil, &InvalidArgumentsError{Args: args}
		}
		o, ok := args[1].(*filter.Options)
		if !ok || o == nil {
			return nil, nil, &InvalidArgumentsError{Args: args}
		}
		o.URI = uri
		opts = o
		cb = asCallback(args[2])
	default:
		return nil, nil, &InvalidArgumentsError{Args: args}
	}

	if cb == nil {
		return nil, nil, &InvalidArgumentsError{Args: args}
	}
	if opts.Headers == nil {
		opts.Headers = make(map[string]string)
	}
	return opts, cb, nil
}

func asCallback(v any) filter.Callback {
	switch cb := v.(type) {
	case filter.Callback:
		return cb
	case func(error, any, *filter.Response, []byte):
		return cb
	default:
		return nil
	}
}
