package view

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/hasansezertasan/fastui-admin/pkg/components"
)

// errRecordNotFound marks lookups that should surface as 404 instead of 500.
var errRecordNotFound = errors.New("view: record not found")

// decodePayload reads a create/edit submission as a flat map. The renderer
// posts url-encoded form data; JSON bodies are accepted for API clients.
func decodePayload(c echo.Context) (map[string]any, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		payload := map[string]any{}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("view: decode json payload: %w", err)
		}
		return payload, nil
	}

	form, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("view: parse form payload: %w", err)
	}
	payload := make(map[string]any, len(form))
	for key, values := range form {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload, nil
}

// fetch loads the record addressed by the raw pk path parameter. A pk that
// does not coerce or match a row yields errRecordNotFound.
func (v *Model) fetch(ctx context.Context, db bun.IDB, pk string) (any, error) {
	record := v.table.NewRecord()
	if err := v.table.SetPK(record, pk); err != nil {
		return nil, errRecordNotFound
	}
	if err := db.NewSelect().Model(record).WherePK().Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func (v *Model) listAPI(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := 1
		if raw := c.QueryParam("page"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 1 {
				page = n
			}
		}
		pageSize := v.opts.PageSize
		if raw := c.QueryParam("pageSize"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < pageSize {
				pageSize = n
			}
		}

		var (
			rows  []map[string]any
			total int
		)
		err := env.DB.View(c.Request().Context(), func(ctx context.Context, db bun.IDB) error {
			n, err := db.NewSelect().Model(v.table.NewRecord()).Count(ctx)
			if err != nil {
				return err
			}
			total = n

			slice := v.table.NewSlice()
			if err := db.NewSelect().Model(slice).
				Order(v.table.PK.Name).
				Offset((page - 1) * pageSize).
				Limit(pageSize).
				Scan(ctx); err != nil {
				return err
			}
			for _, record := range v.table.Records(slice) {
				rows = append(rows, v.table.RowMap(record, v.listCols))
			}
			return nil
		})
		if err != nil {
			c.Logger().Errorf("list %s: %v", v.table.Name, err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}

		if rows == nil {
			rows = []map[string]any{}
		}
		return c.JSON(http.StatusOK, v.listComponents(env, rows, page, pageSize, total))
	}
}

func (v *Model) detailAPI(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		pk := c.Param("pk")

		var record any
		err := env.DB.View(c.Request().Context(), func(ctx context.Context, db bun.IDB) error {
			found, err := v.fetch(ctx, db, pk)
			record = found
			return err
		})
		if errors.Is(err, errRecordNotFound) {
			return notFound(c)
		}
		if err != nil {
			c.Logger().Errorf("detail %s #%s: %v", v.table.Name, pk, err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}

		return c.JSON(http.StatusOK, v.detailComponents(env, record, pk))
	}
}

// createAPI serves the create form on GET and performs the insert on POST.
func (v *Model) createAPI(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method == http.MethodGet {
			back := components.GoToEvent{URL: v.url(env) + "/"}
			return c.JSON(http.StatusOK, v.formComponents(env, "Create "+v.Name(), back, nil))
		}

		payload, err := decodePayload(c)
		if err != nil {
			c.Logger().Warnf("create %s: %v", v.table.Name, err)
			return errorPage(c, env, "Invalid input. Please check the form values and try again.", ".")
		}
		values, fieldErrs := v.validate(payload)
		if fieldErrs != nil {
			return c.JSON(http.StatusUnprocessableEntity, components.NewFormErrorPayload(fieldErrs))
		}

		record := v.table.NewRecord()
		if err := v.apply(record, values); err != nil {
			c.Logger().Errorf("create %s: %v", v.table.Name, err)
			return echo.NewHTTPError(http.StatusInternalServerError)
		}

		err = env.DB.Update(c.Request().Context(), func(ctx context.Context, tx bun.Tx) error {
			_, err := tx.NewInsert().Model(record).Exec(ctx)
			return err
		})
		if err != nil {
			c.Logger().Errorf("create %s: %v", v.table.Name, err)
			return errorPage(c, env, "Failed to create "+v.Name()+". Check server logs for details.", ".")
		}

		pk := v.table.Get(record, v.table.PK)
		return redirect(c, fmt.Sprintf("%s/%v", v.url(env), pk))
	}
}

// editAPI serves the prefilled edit form on GET and performs the update on
// POST.
func (v *Model) editAPI(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		pk := c.Param("pk")

		if c.Request().Method == http.MethodGet {
			var record any
			err := env.DB.View(c.Request().Context(), func(ctx context.Context, db bun.IDB) error {
				found, err := v.fetch(ctx, db, pk)
				record = found
				return err
			})
			if errors.Is(err, errRecordNotFound) {
				return notFound(c)
			}
			if err != nil {
				c.Logger().Errorf("edit %s #%s: %v", v.table.Name, pk, err)
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			initial := v.table.RowMap(record, v.formCols)
			heading := fmt.Sprintf("Edit %s #%s", v.Name(), pk)
			return c.JSON(http.StatusOK, v.formComponents(env, heading, components.BackEvent{}, initial))
		}

		payload, err := decodePayload(c)
		if err != nil {
			c.Logger().Warnf("update %s #%s: %v", v.table.Name, pk, err)
			return errorPage(c, env, "Invalid input. Please check the form values and try again.", ".")
		}
		values, fieldErrs := v.validate(payload)
		if fieldErrs != nil {
			return c.JSON(http.StatusUnprocessableEntity, components.NewFormErrorPayload(fieldErrs))
		}

		err = env.DB.Update(c.Request().Context(), func(ctx context.Context, tx bun.Tx) error {
			record, err := v.fetch(ctx, tx, pk)
			if err != nil {
				return err
			}
			if err := v.apply(record, values); err != nil {
				return err
			}
			_, err = tx.NewUpdate().Model(record).WherePK().Exec(ctx)
			return err
		})
		if errors.Is(err, errRecordNotFound) {
			return notFound(c)
		}
		if err != nil {
			c.Logger().Errorf("update %s #%s: %v", v.table.Name, pk, err)
			return errorPage(c, env, "Failed to update "+v.Name()+". Check server logs for details.", ".")
		}

		return redirect(c, fmt.Sprintf("%s/%s", v.url(env), pk))
	}
}

func (v *Model) deleteAPI(env *Env) echo.HandlerFunc {
	return func(c echo.Context) error {
		pk := c.Param("pk")

		err := env.DB.Update(c.Request().Context(), func(ctx context.Context, tx bun.Tx) error {
			record := v.table.NewRecord()
			if err := v.table.SetPK(record, pk); err != nil {
				return errRecordNotFound
			}
			res, err := tx.NewDelete().Model(record).WherePK().Exec(ctx)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if affected == 0 {
				return errRecordNotFound
			}
			return nil
		})
		if errors.Is(err, errRecordNotFound) {
			return notFound(c)
		}
		if err != nil {
			c.Logger().Errorf("delete %s #%s: %v", v.table.Name, pk, err)
			return errorPage(c, env, "Failed to delete "+v.Name()+". Check server logs for details.",
				fmt.Sprintf("%s/%s", v.url(env), pk))
		}

		return redirect(c, v.url(env)+"/")
	}
}
