package view

import (
	"fmt"
	"strings"

	"github.com/hasansezertasan/fastui-admin/pkg/components"
	"github.com/hasansezertasan/fastui-admin/pkg/schema"
	"github.com/hasansezertasan/fastui-admin/pkg/session"
)

// Model is the CRUD view for one registered ORM model. It is created at
// registration, bound to schema metadata by the admin, and immutable after
// that.
type Model struct {
	model any
	opts  Options

	table    *schema.Table
	listCols []schema.Column
	formCols []schema.Column
}

// NewModel registers a bun model (pointer to a tagged struct) with optional
// display configuration.
func NewModel(model any, fns ...OptionFn) *Model {
	return &Model{model: model, opts: NewOptions(fns...)}
}

// Bind introspects the model and resolves the visible-column configuration.
// It fails with a SchemaError when the model has no primary key or the
// column list names a column that does not exist.
func (v *Model) Bind(db *session.Provider) error {
	table, err := schema.Introspect(db.DB(), v.model)
	if err != nil {
		return err
	}

	listCols, err := table.Select(v.opts.ColumnList, v.opts.ColumnExcludeList)
	if err != nil {
		return err
	}
	formCols, err := table.FormColumns(v.opts.ColumnList, v.opts.ColumnExcludeList)
	if err != nil {
		return err
	}

	v.table = table
	v.listCols = listCols
	v.formCols = formCols
	if v.opts.Name == "" {
		v.opts.Name = titleize(table.Name)
	}
	if v.opts.Slug == "" {
		v.opts.Slug = table.Name
	}
	return nil
}

func (v *Model) Name() string { return v.opts.Name }

func (v *Model) Slug() string { return v.opts.Slug }

func (v *Model) IsVisible() bool { return v.opts.Visible }

// Table exposes the bound schema descriptor, mainly for tests and custom
// index pages.
func (v *Model) Table() *schema.Table { return v.table }

// url returns the browser path of the list page, including the admin base.
func (v *Model) url(env *Env) string {
	return env.BaseURL + "/" + v.Slug()
}

func titleize(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' })
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// listComponents builds the list page: heading, optional create link, the
// row table, and pagination metadata.
func (v *Model) listComponents(env *Env, rows []map[string]any, page, pageSize, total int) []components.Component {
	header := []components.Component{
		components.Heading{Text: v.Name(), Level: 2},
	}
	if v.opts.CanCreate {
		header = append(header, components.Link{
			Components: []components.Component{components.Text{Text: "+ Create New " + v.Name()}},
			OnClick:    components.GoToEvent{URL: "./create"},
			ClassName:  "btn btn-primary mb-3",
		})
	}

	columns := make([]components.DisplayLookup, 0, len(v.listCols))
	for _, col := range v.listCols {
		lookup := components.DisplayLookup{Field: col.Name, Title: col.Title}
		if col.Name == v.table.PK.Name && v.opts.CanViewDetails {
			lookup.OnClick = components.GoToEvent{URL: fmt.Sprintf("./{%s}", col.Name)}
		}
		columns = append(columns, lookup)
	}

	return env.Layout.Render(
		components.Div{Components: header},
		components.Table{Data: rows, Columns: columns, NoDataMessage: "No records found"},
		components.Pagination{Page: page, PageSize: pageSize, Total: total},
	)
}

// detailComponents builds the detail page: heading, action row, and the
// field/value listing.
func (v *Model) detailComponents(env *Env, record any, pk string) []components.Component {
	actions := []components.Component{
		components.Link{
			Components: []components.Component{components.Text{Text: "← Back to List"}},
			OnClick:    components.GoToEvent{URL: v.url(env) + "/"},
			ClassName:  "btn btn-secondary me-2",
		},
	}
	if v.opts.CanEdit {
		actions = append(actions, components.Link{
			Components: []components.Component{components.Text{Text: "Edit"}},
			OnClick:    components.GoToEvent{URL: "./edit"},
			ClassName:  "btn btn-primary me-2",
		})
	}
	if v.opts.CanDelete {
		actions = append(actions, components.Form{
			SubmitURL:  fmt.Sprintf("./%s/delete", pk),
			Method:     "POST",
			FormFields: []components.FormField{},
			Footer: []components.Component{
				components.Button{Text: "Delete", ClassName: "btn btn-danger"},
			},
		})
	}

	fields := make([]components.DisplayLookup, 0, len(v.listCols))
	for _, col := range v.listCols {
		fields = append(fields, components.DisplayLookup{Field: col.Name, Title: col.Title})
	}

	return env.Layout.Render(
		components.Heading{Text: fmt.Sprintf("%s #%s", v.Name(), pk), Level: 2},
		components.Div{Components: actions, ClassName: "mb-3"},
		components.Details{Data: v.table.RowMap(record, v.listCols), Fields: fields},
	)
}

// formComponents builds the create or edit page. initial carries current
// field values for edits and is nil for creates.
func (v *Model) formComponents(env *Env, heading string, back components.Event, initial map[string]any) []components.Component {
	fields := make([]components.FormField, 0, len(v.formCols))
	for _, col := range v.formCols {
		var value any
		if initial != nil {
			value = initial[col.Name]
		}
		fields = append(fields, formField(col, value))
	}

	return env.Layout.Render(
		components.Heading{Text: heading, Level: 2},
		components.Link{
			Components: []components.Component{components.Text{Text: "← Back"}},
			OnClick:    back,
			ClassName:  "btn btn-secondary mb-3",
		},
		components.Form{SubmitURL: ".", Method: "POST", FormFields: fields},
	)
}

// formField maps a column descriptor onto the matching input component.
func formField(col schema.Column, initial any) components.FormField {
	if initial == nil {
		initial = col.Default
	}

	switch col.Type {
	case schema.TypeBoolean:
		checked, _ := initial.(bool)
		return components.FormFieldBoolean{
			Name:    col.Name,
			Title:   col.Title,
			Initial: checked,
		}
	case schema.TypeText:
		text, _ := initial.(string)
		return components.FormFieldTextarea{
			Name:     col.Name,
			Title:    col.Title,
			Required: col.Required(),
			Rows:     4,
			Initial:  text,
		}
	case schema.TypeInteger, schema.TypeFloat:
		return components.FormFieldInput{
			Name:     col.Name,
			Title:    col.Title,
			Required: col.Required(),
			HTMLType: "number",
			Initial:  initial,
		}
	case schema.TypeDatetime:
		return components.FormFieldInput{
			Name:     col.Name,
			Title:    col.Title,
			Required: col.Required(),
			HTMLType: "datetime-local",
			Initial:  initial,
		}
	case schema.TypeDate:
		return components.FormFieldInput{
			Name:     col.Name,
			Title:    col.Title,
			Required: col.Required(),
			HTMLType: "date",
			Initial:  initial,
		}
	case schema.TypeTime:
		return components.FormFieldInput{
			Name:     col.Name,
			Title:    col.Title,
			Required: col.Required(),
			HTMLType: "time",
			Initial:  initial,
		}
	default:
		return components.FormFieldInput{
			Name:     col.Name,
			Title:    col.Title,
			Required: col.Required(),
			HTMLType: "text",
			Initial:  initial,
		}
	}
}

// validate coerces the submitted payload against the form columns. It
// returns the coerced values keyed by column name, or the per-field errors
// that should be surfaced with HTTP 422. A nil value means the field was
// submitted empty (or, for checkboxes, omitted) and must be reset to its
// zero/NULL value; dropping it would silently keep the old value on edits.
func (v *Model) validate(payload map[string]any) (map[string]any, []components.FormError) {
	values := make(map[string]any, len(v.formCols))
	var errs []components.FormError

	for _, col := range v.formCols {
		raw := payload[col.Name]
		coerced, err := col.Coerce(raw)
		if err != nil {
			kind := "value_error"
			if raw == nil || raw == "" {
				kind = "missing"
			}
			errs = append(errs, components.FormError{
				Type: kind,
				Loc:  []string{col.Name},
				Msg:  err.Error(),
			})
			continue
		}
		values[col.Name] = coerced
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// apply writes coerced values onto a record. Nil values reset the field to
// its zero/NULL value.
func (v *Model) apply(record any, values map[string]any) error {
	for _, col := range v.formCols {
		value, ok := values[col.Name]
		if !ok {
			continue
		}
		if err := v.table.Set(record, col, value); err != nil {
			return fmt.Errorf("view: set %s.%s: %w", v.table.Name, col.Name, err)
		}
	}
	return nil
}
