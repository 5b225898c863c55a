package rowset

// queryopts.go holds the per-call options shared by the three entry points.

// queryOptions holds the resolved per-call settings.
type queryOptions struct {
	table          string
	maxConcurrency int
}

// QueryOption is an optional argument to RunToDocument, StreamRows and
// DispatchParallel.
type QueryOption func(o *queryOptions)

// TableName sets the table envelope key the result is wrapped under. The
// name is never parsed out of the SQL text. Defaults to "Table".
func TableName(name string) QueryOption {
	return func(o *queryOptions) {
		o.table = name
	}
}

// MaxConcurrency sets how many row callbacks DispatchParallel may run at
// once. Must be positive. Defaults to DefaultMaxConcurrency. Ignored by the
// other entry points.
func MaxConcurrency(n int) QueryOption {
	return func(o *queryOptions) {
		o.maxConcurrency = n
	}
}

func resolveOptions(options []QueryOption) queryOptions {
	o := queryOptions{
		table:          DefaultTableName,
		maxConcurrency: DefaultMaxConcurrency,
	}
	for _, opt := range options {
		opt(&o)
	}
	return o
}
