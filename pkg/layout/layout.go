// Package layout wraps view content in the shared admin page structure:
// page title, navbar, content area, and footer. It also serves the prebuilt
// HTML shell that boots the FastUI renderer.
package layout

import (
	"strings"

	"github.com/hasansezertasan/fastui-admin/pkg/components"
)

// NavItem is one navbar entry pointing at a registered view.
type NavItem struct {
	Label string
	// URL is relative to the admin base path, "/" for the index.
	URL string
}

// Options configures the shared page chrome.
type Options struct {
	Title      string
	LogoURL    string
	FaviconURL string
	FooterText string
	NavItems   []NavItem
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the baseline layout configuration.
func DefaultOptions() Options {
	return Options{
		Title:      "Admin",
		FooterText: "Powered by FastUI Admin",
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
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = "Admin"
	}
	if opts.NavItems != nil {
		opts.NavItems = append([]NavItem{}, opts.NavItems...)
	}
	return opts
}

// WithTitle sets the admin interface title.
func WithTitle(title string) OptionFn {
	return func(o *Options) {
		o.Title = title
	}
}

// WithLogoURL sets the navbar logo image URL.
func WithLogoURL(url string) OptionFn {
	return func(o *Options) {
		o.LogoURL = url
	}
}

// WithFaviconURL sets the favicon used by the HTML shell.
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

// WithNavItems sets the navbar entries.
func WithNavItems(items []NavItem) OptionFn {
	return func(o *Options) {
		if items == nil {
			o.NavItems = nil
			return
		}
		o.NavItems = append([]NavItem{}, items...)
	}
}

// Layout renders the shared page chrome around view content.
type Layout struct {
	opts Options
}

// New constructs a Layout from default options plus overrides.
func New(fns ...OptionFn) *Layout {
	return &Layout{opts: NewOptions(fns...)}
}

// Options returns a copy of the layout configuration.
func (l *Layout) Options() Options {
	return NewOptions(func(o *Options) { *o = l.opts })
}

// Title returns the configured admin title.
func (l *Layout) Title() string {
	return l.opts.Title
}

// Navbar builds the navigation bar with links to all registered views.
func (l *Layout) Navbar() components.Navbar {
	links := make([]components.Link, 0, len(l.opts.NavItems))
	for _, item := range l.opts.NavItems {
		active := item.URL
		if item.URL != "/" {
			active = "startswith:" + item.URL
		}
		links = append(links, components.Link{
			Components: []components.Component{components.Text{Text: item.Label}},
			OnClick:    components.GoToEvent{URL: item.URL},
			Active:     active,
		})
	}
	return components.Navbar{
		Title:      l.opts.Title,
		TitleEvent: components.GoToEvent{URL: "/"},
		StartLinks: links,
		EndLinks:   []components.Link{},
	}
}

// Footer builds the page footer.
func (l *Layout) Footer() components.Footer {
	return components.Footer{
		Links:     []components.Link{},
		ExtraText: l.opts.FooterText,
	}
}

// Render wraps content components in the full page structure, ready to be
// serialized as the JSON response body.
func (l *Layout) Render(content ...components.Component) []components.Component {
	return []components.Component{
		components.PageTitle{Text: l.opts.Title},
		l.Navbar(),
		components.Page{Components: content},
		l.Footer(),
	}
}
