// Package fastuiadmin mounts an auto-generated CRUD admin for bun models as
// a sub-application on a host echo instance. Views are derived from model
// schema metadata and served as FastUI component trees consumed by the
// prebuilt front-end renderer.
package fastuiadmin

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/hasansezertasan/fastui-admin/pkg/layout"
	"github.com/hasansezertasan/fastui-admin/pkg/session"
	"github.com/hasansezertasan/fastui-admin/pkg/view"
)

// Admin is the top-level admin object: an ordered registry of views plus
// the configuration they share. Views are registered with AddView or
// AddModel before Mount; the registry is frozen afterwards.
type Admin struct {
	host     *echo.Echo
	provider *session.Provider
	opts     Options

	views   []view.View
	paths   map[string]view.View
	env     *view.Env
	mounted bool
}

// New creates an admin bound to the host application and database handle.
func New(host *echo.Echo, db *bun.DB, fns ...OptionFn) (*Admin, error) {
	if host == nil {
		return nil, fmt.Errorf("fastuiadmin: host application is required")
	}
	provider, err := session.NewProvider(db)
	if err != nil {
		return nil, fmt.Errorf("fastuiadmin: %w", err)
	}

	return &Admin{
		host:     host,
		provider: provider,
		opts:     NewOptions(fns...),
		paths:    make(map[string]view.View),
	}, nil
}

// AddView registers a view. The view is bound to schema metadata
// immediately, so misconfigured models fail at registration rather than at
// request time. Route paths must be unique and registration is only
// possible before Mount.
func (a *Admin) AddView(v view.View) error {
	if a.mounted {
		return fmt.Errorf("fastuiadmin: cannot add views after Mount")
	}
	if err := v.Bind(a.provider); err != nil {
		return err
	}

	path := "/" + v.Slug()
	if _, dup := a.paths[path]; dup {
		return fmt.Errorf("fastuiadmin: duplicate route path %q", path)
	}

	a.paths[path] = v
	a.views = append(a.views, v)
	return nil
}

// AddModel registers a model view for a bun model, returning it for
// further inspection.
func (a *Admin) AddModel(model any, fns ...view.OptionFn) (*view.Model, error) {
	v := view.NewModel(model, fns...)
	if err := a.AddView(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Views returns the registered views in registration order, excluding the
// index.
func (a *Admin) Views() []view.View {
	return a.views
}

// BaseURL returns the normalized mount path.
func (a *Admin) BaseURL() string {
	return a.opts.BaseURL
}

// Mount binds all admin routes under the base path on the host
// application. Calling Mount twice is a no-op.
func (a *Admin) Mount() error {
	if a.mounted {
		return nil
	}

	index := a.opts.Index
	if index == nil {
		index = view.NewIndex(nil)
	}
	if err := index.Bind(a.provider); err != nil {
		return err
	}

	all := append([]view.View{index}, a.views...)

	nav := make([]layout.NavItem, 0, len(all))
	var modelLinks []layout.NavItem
	for _, v := range all {
		if !v.IsVisible() {
			continue
		}
		url := "/"
		if v.Slug() != "" {
			url = "/" + v.Slug() + "/"
		}
		nav = append(nav, layout.NavItem{Label: v.Name(), URL: url})
		if _, ok := v.(*view.Model); ok {
			modelLinks = append(modelLinks, layout.NavItem{Label: v.Name(), URL: url})
		}
	}

	layoutOpts := []layout.OptionFn{
		layout.WithTitle(a.opts.Title),
		layout.WithLogoURL(a.opts.LogoURL),
		layout.WithFaviconURL(a.opts.FaviconURL),
		layout.WithNavItems(nav),
	}
	if a.opts.FooterText != "" {
		layoutOpts = append(layoutOpts, layout.WithFooterText(a.opts.FooterText))
	}
	lay := layout.New(layoutOpts...)

	env := &view.Env{
		BaseURL:    a.opts.BaseURL,
		Layout:     lay,
		DB:         a.provider,
		ModelLinks: modelLinks,
	}

	g := a.host.Group(a.opts.BaseURL)
	for _, v := range all {
		if err := v.MountTo(g, env); err != nil {
			return err
		}
	}

	// SPA catch-all: unknown paths under the base serve the shell so the
	// renderer can route client-side.
	g.GET("/*", view.ShellHandler(env, a.opts.Title))

	a.env = env
	a.mounted = true
	return nil
}
