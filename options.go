package fastuiadmin

import (
	"strings"

	"github.com/hasansezertasan/fastui-admin/pkg/view"
)

// Options is the admin-level configuration surface.
type Options struct {
	// Title is shown in the navbar and the document title.
	Title string
	// BaseURL is the mount path on the host application.
	BaseURL string
	// LogoURL is the navbar logo image.
	LogoURL string
	// FaviconURL is used by the HTML shell.
	FaviconURL string
	// FooterText overrides the default footer line.
	FooterText string
	// Index replaces the default dashboard view.
	Index view.View
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline admin configuration.
func DefaultOptions() Options {
	return Options{
		Title:   "Admin",
		BaseURL: "/admin",
	}
}

// NewOptions folds option functions over the defaults and normalizes the
// result: the base URL always has a leading slash and no trailing slash.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = "Admin"
	}
	base := strings.TrimSpace(opts.BaseURL)
	base = "/" + strings.Trim(base, "/")
	if base == "/" {
		base = "/admin"
	}
	opts.BaseURL = base
	return opts
}

// WithTitle sets the admin interface title.
func WithTitle(title string) OptionFn {
	return func(o *Options) {
		o.Title = title
	}
}

// WithBaseURL sets the mount path (default "/admin").
func WithBaseURL(baseURL string) OptionFn {
	return func(o *Options) {
		o.BaseURL = baseURL
	}
}

// WithLogoURL sets the navbar logo image URL.
func WithLogoURL(url string) OptionFn {
	return func(o *Options) {
		o.LogoURL = url
	}
}

// WithFaviconURL sets the favicon URL used by the HTML shell.
func WithFaviconURL(url string) OptionFn {
	return func(o *Options) {
		o.FaviconURL = url
	}
}

// WithFooterText overrides the footer text.
func WithFooterText(text string) OptionFn {
	return func(o *Options) {
		o.FooterText = text
	}
}

// WithIndexView replaces the default dashboard view.
func WithIndexView(v view.View) OptionFn {
	return func(o *Options) {
		o.Index = v
	}
}
