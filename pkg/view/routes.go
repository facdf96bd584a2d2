package view

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// MountTo registers the model view's routes under the admin group. Every
// enabled operation gets an API route returning components; GET operations
// also get an HTML twin serving the renderer shell. Disabled capabilities
// are omitted entirely.
func (v *Model) MountTo(g *echo.Group, env *Env) error {
	if v.table == nil {
		return fmt.Errorf("view: model view %q is not bound", v.opts.Name)
	}

	base := "/" + v.Slug()
	title := env.Layout.Title()

	g.GET(base+"/", shellHandler(env, v.Name()+" - "+title))
	g.GET("/api"+base+"/", v.listAPI(env))

	if v.opts.CanCreate {
		g.GET(base+"/create", shellHandler(env, "Create "+v.Name()+" - "+title))
		create := v.createAPI(env)
		g.GET("/api"+base+"/create", create)
		g.POST("/api"+base+"/create", create)
	}

	if v.opts.CanViewDetails {
		g.GET(base+"/:pk", shellHandler(env, v.Name()+" - "+title))
		g.GET("/api"+base+"/:pk", v.detailAPI(env))
	}

	if v.opts.CanEdit {
		g.GET(base+"/:pk/edit", shellHandler(env, "Edit "+v.Name()+" - "+title))
		edit := v.editAPI(env)
		g.GET("/api"+base+"/:pk/edit", edit)
		g.POST("/api"+base+"/:pk/edit", edit)
	}

	if v.opts.CanDelete {
		remove := v.deleteAPI(env)
		g.POST("/api"+base+"/:pk/delete", remove)
		g.DELETE("/api"+base+"/:pk/delete", remove)
	}

	return nil
}
