// Package view builds the admin's list, detail, create, edit, and delete
// operations for registered models, emitting component trees instead of HTML.
package view

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hasansezertasan/fastui-admin/pkg/components"
	"github.com/hasansezertasan/fastui-admin/pkg/layout"
	"github.com/hasansezertasan/fastui-admin/pkg/session"
)

// Env carries the mount-time context views need to build URLs, pages, and
// database sessions. It is owned by the admin instance and immutable after
// mount.
type Env struct {
	// BaseURL is the admin mount path, e.g. "/admin".
	BaseURL string
	Layout  *layout.Layout
	DB      *session.Provider
	// ModelLinks lists the visible model views as base-relative nav items,
	// used by the dashboard.
	ModelLinks []layout.NavItem
}

// APIRoot returns the URL prefix component endpoints live under.
func (e *Env) APIRoot() string {
	return e.BaseURL + "/api"
}

// View is one mountable admin page. Bind resolves model metadata when the
// view is registered; MountTo registers its routes under the admin group.
type View interface {
	Name() string
	Slug() string
	IsVisible() bool
	Bind(db *session.Provider) error
	MountTo(g *echo.Group, env *Env) error
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a URL-safe path segment.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	return strings.Trim(s, "-")
}

// ShellHandler serves the prebuilt HTML shell with a page-specific title.
// The admin uses it for the SPA catch-all route.
func ShellHandler(env *Env, title string) echo.HandlerFunc {
	return shellHandler(env, title)
}

// shellHandler serves the prebuilt HTML shell with a page-specific title.
func shellHandler(env *Env, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		html, err := env.Layout.PrebuiltHTML(title, env.APIRoot())
		if err != nil {
			c.Logger().Errorf("render shell: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.HTML(http.StatusOK, html)
	}
}

// notFound is the JSON body for unknown records, matching the renderer's
// expectations.
func notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"detail": "Not found"})
}

// errorPage renders an in-admin error page with a way back, returned with
// status 400 for failed writes.
func errorPage(c echo.Context, env *Env, message, backURL string) error {
	page := env.Layout.Render(
		components.Heading{Text: "Error", Level: 2},
		components.Paragraph{Text: message},
		components.Link{
			Components: []components.Component{components.Text{Text: "← Go Back"}},
			OnClick:    components.GoToEvent{URL: backURL},
			ClassName:  "btn btn-secondary",
		},
	)
	return c.JSON(http.StatusBadRequest, page)
}

// redirect emits a FireEvent component that navigates the renderer to url.
func redirect(c echo.Context, url string) error {
	return c.JSON(http.StatusOK, []components.Component{
		components.FireEvent{Event: components.GoToEvent{URL: url}},
	})
}

// RenderFunc produces the content components of a custom view.
type RenderFunc func(c echo.Context, env *Env) ([]components.Component, error)

// Simple is a plain, non-model view: a name plus a render function. It gets
// an HTML route and an API route under its slug.
type Simple struct {
	name    string
	visible bool
	render  RenderFunc
}

// NewSimple constructs a custom view. The render function receives the
// request and the admin environment and returns page content.
func NewSimple(name string, render RenderFunc) *Simple {
	return &Simple{name: name, visible: true, render: render}
}

// Hidden marks the view as excluded from the navbar while keeping its
// routes. It returns the view for chaining.
func (v *Simple) Hidden() *Simple {
	v.visible = false
	return v
}

func (v *Simple) Name() string { return v.name }

func (v *Simple) Slug() string { return Slugify(v.name) }

func (v *Simple) IsVisible() bool { return v.visible }

// Bind is a no-op; simple views carry no model metadata.
func (v *Simple) Bind(*session.Provider) error { return nil }

// MountTo registers the HTML and API routes for the view.
func (v *Simple) MountTo(g *echo.Group, env *Env) error {
	if v.render == nil {
		return fmt.Errorf("view: %s: render function is required", v.name)
	}
	base := "/" + v.Slug()
	g.GET(base+"/", shellHandler(env, v.name+" - "+env.Layout.Title()))
	g.GET("/api"+base+"/", func(c echo.Context) error {
		content, err := v.render(c, env)
		if err != nil {
			c.Logger().Errorf("render %s view: %v", v.name, err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, env.Layout.Render(content...))
	})
	return nil
}

// Index is the dashboard view mounted at the admin root. Its default render
// lists links to every visible model view; callers can replace it.
type Index struct {
	render RenderFunc
}

// NewIndex constructs the dashboard view. Passing nil keeps the default
// render.
func NewIndex(render RenderFunc) *Index {
	return &Index{render: render}
}

func (v *Index) Name() string { return "Dashboard" }

func (v *Index) Slug() string { return "" }

func (v *Index) IsVisible() bool { return true }

// Bind is a no-op; the dashboard carries no model metadata.
func (v *Index) Bind(*session.Provider) error { return nil }

// MountTo registers the dashboard at the group root.
func (v *Index) MountTo(g *echo.Group, env *Env) error {
	g.GET("/", shellHandler(env, env.Layout.Title()))
	g.GET("/api/", func(c echo.Context) error {
		render := v.render
		if render == nil {
			render = defaultIndexRender
		}
		content, err := render(c, env)
		if err != nil {
			c.Logger().Errorf("render dashboard: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, env.Layout.Render(content...))
	})
	return nil
}

func defaultIndexRender(_ echo.Context, env *Env) ([]components.Component, error) {
	content := []components.Component{
		components.Heading{Text: "Welcome to " + env.Layout.Title(), Level: 2},
		components.Paragraph{Text: "Select a model from the navigation to manage your data."},
	}

	if len(env.ModelLinks) > 0 {
		links := make([]components.Component, 0, len(env.ModelLinks))
		for _, item := range env.ModelLinks {
			links = append(links, components.Link{
				Components: []components.Component{components.Text{Text: item.Label}},
				OnClick:    components.GoToEvent{URL: item.URL},
				ClassName:  "btn btn-outline-primary me-2 mb-2",
			})
		}
		content = append(content, components.Div{Components: links, ClassName: "mt-3"})
	}
	return content, nil
}
