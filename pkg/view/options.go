package view

// Options is the display configuration of one model view.
type Options struct {
	// Name is the display name; defaults to the title-cased table name.
	Name string
	// Slug is the route path segment; defaults to the table name.
	Slug string
	// ColumnList restricts and orders the visible columns. Empty means all.
	ColumnList []string
	// ColumnExcludeList removes columns when ColumnList is empty.
	ColumnExcludeList []string
	// PageSize bounds list pages; requested page sizes are clamped to it.
	PageSize int

	CanCreate      bool
	CanEdit        bool
	CanDelete      bool
	CanViewDetails bool
	Visible        bool
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline model view configuration: all
// capabilities enabled, 25 rows per page.
func DefaultOptions() Options {
	return Options{
		PageSize:       25,
		CanCreate:      true,
		CanEdit:        true,
		CanDelete:      true,
		CanViewDetails: true,
		Visible:        true,
	}
}

// NewOptions folds option functions over the defaults and normalizes the
// result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 25
	}
	if opts.ColumnList != nil {
		opts.ColumnList = append([]string{}, opts.ColumnList...)
	}
	if opts.ColumnExcludeList != nil {
		opts.ColumnExcludeList = append([]string{}, opts.ColumnExcludeList...)
	}
	return opts
}

// WithName overrides the display name.
func WithName(name string) OptionFn {
	return func(o *Options) {
		o.Name = name
	}
}

// WithSlug overrides the route path segment.
func WithSlug(slug string) OptionFn {
	return func(o *Options) {
		o.Slug = slug
	}
}

// WithColumns restricts the visible columns to the given ordered list.
func WithColumns(columns ...string) OptionFn {
	return func(o *Options) {
		o.ColumnList = append([]string{}, columns...)
	}
}

// WithExcludedColumns hides the given columns when no explicit column list
// is set.
func WithExcludedColumns(columns ...string) OptionFn {
	return func(o *Options) {
		o.ColumnExcludeList = append([]string{}, columns...)
	}
}

// WithPageSize sets the list page size.
func WithPageSize(size int) OptionFn {
	return func(o *Options) {
		o.PageSize = size
	}
}

// WithCreate toggles the create capability and its routes.
func WithCreate(enabled bool) OptionFn {
	return func(o *Options) {
		o.CanCreate = enabled
	}
}

// WithEdit toggles the edit capability and its routes.
func WithEdit(enabled bool) OptionFn {
	return func(o *Options) {
		o.CanEdit = enabled
	}
}

// WithDelete toggles the delete capability and its routes.
func WithDelete(enabled bool) OptionFn {
	return func(o *Options) {
		o.CanDelete = enabled
	}
}

// WithDetails toggles the detail view and its routes.
func WithDetails(enabled bool) OptionFn {
	return func(o *Options) {
		o.CanViewDetails = enabled
	}
}

// WithVisible toggles the navbar entry without touching the routes.
func WithVisible(visible bool) OptionFn {
	return func(o *Options) {
		o.Visible = visible
	}
}
