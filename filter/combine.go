package filter

// Combine merges an ordered list of filters into a single filter with
// identical observable behavior. Inserting the combined filter at any
// chain position is equivalent to inserting the original filters, in the
// same order, at consecutive positions: the first argument plays the
// sink-facing role, the last the caller-facing role.
//
// Combine is associative: Combine(Combine(f1, f2), f3) behaves exactly
// like Combine(f1, f2, f3).
func Combine(filters ...Filter) Filter {
	if len(filters) == 0 {
		panic("filter: Combine requires at least one filter")
	}
	for _, f := range filters {
		if f == nil {
			panic("filter: nil filter passed to Combine")
		}
	}
	return Func(func(opts *Options, next Next, cb Callback) Stream {
		return Fold(next, filters...)(opts, cb)
	})
}
