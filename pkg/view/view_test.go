package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/hasansezertasan/fastui-admin/pkg/components"
	"github.com/hasansezertasan/fastui-admin/pkg/layout"
	"github.com/hasansezertasan/fastui-admin/pkg/schema"
	"github.com/hasansezertasan/fastui-admin/pkg/session"
)

type track struct {
	bun.BaseModel `bun:"table:tracks"`

	ID     int64  `bun:"id,pk,autoincrement"`
	Title  string `bun:"title,notnull,unique"`
	Artist string `bun:"artist,notnull"`
	Plays  int64  `bun:"plays,default:0"`
	Liked  bool   `bun:"liked,default:false"`
	Notes  string `bun:"notes"`
}

type fixture struct {
	e    *echo.Echo
	env  *Env
	view *Model
	db   *session.Provider
}

func newFixture(t *testing.T, fns ...OptionFn) *fixture {
	t.Helper()

	db, err := session.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if _, err := db.NewCreateTable().Model((*track)(nil)).IfNotExists().Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}

	provider, err := session.NewProvider(db)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	v := NewModel((*track)(nil), fns...)
	if err := v.Bind(provider); err != nil {
		t.Fatalf("bind: %v", err)
	}

	e := echo.New()
	env := &Env{
		BaseURL: "/admin",
		Layout:  layout.New(layout.WithTitle("Test Admin")),
		DB:      provider,
	}
	if err := v.MountTo(e.Group("/admin"), env); err != nil {
		t.Fatalf("mount: %v", err)
	}

	return &fixture{e: e, env: env, view: v, db: provider}
}

func (f *fixture) seed(t *testing.T, tracks ...*track) {
	t.Helper()
	for _, tr := range tracks {
		if _, err := f.db.DB().NewInsert().Model(tr).Exec(context.Background()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) postJSON(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

// decodeBody parses a JSON response into a generic tree.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()
	var tree any
	if err := json.Unmarshal(rec.Body.Bytes(), &tree); err != nil {
		t.Fatalf("decode response: %v\n%s", err, rec.Body.String())
	}
	return tree
}

// findComponent walks a decoded component tree for the first node with the
// given type discriminator.
func findComponent(node any, typ string) map[string]any {
	switch n := node.(type) {
	case []any:
		for _, item := range n {
			if found := findComponent(item, typ); found != nil {
				return found
			}
		}
	case map[string]any:
		if n["type"] == typ {
			return n
		}
		for _, key := range []string{"components", "formFields", "footer", "event", "startLinks", "links"} {
			if child, ok := n[key]; ok {
				if found := findComponent(child, typ); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

func mustFind(t *testing.T, rec *httptest.ResponseRecorder, typ string) map[string]any {
	t.Helper()
	found := findComponent(decodeBody(t, rec), typ)
	if found == nil {
		t.Fatalf("component %s not found in:\n%s", typ, rec.Body.String())
	}
	return found
}

// redirectURL extracts the go-to URL from a FireEvent response.
func redirectURL(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	fire := mustFind(t, rec, "FireEvent")
	event, _ := fire["event"].(map[string]any)
	if event == nil || event["type"] != "go-to" {
		t.Fatalf("expected go-to event, got %v", fire)
	}
	u, _ := event["url"].(string)
	return u
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"User Accounts", "user-accounts"},
		{"  API Keys  ", "api-keys"},
		{"already-slugged", "already-slugged"},
		{"Weird___Name!!", "weird-name"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBindDefaults(t *testing.T) {
	f := newFixture(t)

	if got := f.view.Name(); got != "Tracks" {
		t.Errorf("Name = %q, want Tracks", got)
	}
	if got := f.view.Slug(); got != "tracks" {
		t.Errorf("Slug = %q, want tracks", got)
	}
	if !f.view.IsVisible() {
		t.Error("view should default to visible")
	}
}

func TestBindUnknownColumn(t *testing.T) {
	db, err := session.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	provider, _ := session.NewProvider(db)

	v := NewModel((*track)(nil), WithColumns("id", "nope"))
	err = v.Bind(provider)
	if !schema.IsSchemaError(err) {
		t.Fatalf("want SchemaError, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	f := newFixture(t, WithPageSize(3))
	for i := 1; i <= 7; i++ {
		f.seed(t, &track{Title: fmt.Sprintf("song %d", i), Artist: "band"})
	}

	rec := f.get(t, "/admin/api/tracks/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	table := mustFind(t, rec, "Table")
	if rows := table["data"].([]any); len(rows) != 3 {
		t.Errorf("page rows = %d, want 3", len(rows))
	}
	pag := mustFind(t, rec, "Pagination")
	if pag["total"] != float64(7) || pag["pageCount"] != float64(3) {
		t.Errorf("pagination = %v", pag)
	}

	// Last page carries the remainder.
	rec = f.get(t, "/admin/api/tracks/?page=3")
	table = mustFind(t, rec, "Table")
	if rows := table["data"].([]any); len(rows) != 1 {
		t.Errorf("last page rows = %d, want 1", len(rows))
	}

	// Page below 1 is clamped to the first page.
	rec = f.get(t, "/admin/api/tracks/?page=0")
	table = mustFind(t, rec, "Table")
	if rows := table["data"].([]any); len(rows) != 3 {
		t.Errorf("clamped page rows = %d, want 3", len(rows))
	}

	// A pageSize above the configured maximum is ignored.
	rec = f.get(t, "/admin/api/tracks/?pageSize=100")
	table = mustFind(t, rec, "Table")
	if rows := table["data"].([]any); len(rows) != 3 {
		t.Errorf("oversized pageSize rows = %d, want 3", len(rows))
	}

	// Out-of-range pages return an empty, successful page.
	rec = f.get(t, "/admin/api/tracks/?page=99")
	if rec.Code != http.StatusOK {
		t.Fatalf("out-of-range status = %d", rec.Code)
	}
	table = mustFind(t, rec, "Table")
	if rows := table["data"].([]any); len(rows) != 0 {
		t.Errorf("out-of-range rows = %d, want 0", len(rows))
	}
}

func TestListColumnSelection(t *testing.T) {
	f := newFixture(t, WithColumns("id", "title"))
	f.seed(t, &track{Title: "one", Artist: "band"})

	rec := f.get(t, "/admin/api/tracks/")
	table := mustFind(t, rec, "Table")

	cols := table["columns"].([]any)
	if len(cols) != 2 {
		t.Fatalf("columns = %d, want 2", len(cols))
	}
	first := cols[0].(map[string]any)
	if first["field"] != "id" {
		t.Errorf("first column = %v", first)
	}
	if first["onClick"] == nil {
		t.Error("pk column should link to the detail page")
	}

	row := table["data"].([]any)[0].(map[string]any)
	if _, leaked := row["artist"]; leaked {
		t.Error("unselected column present in row data")
	}
}

func TestCreateThenDetail(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/admin/api/tracks/create")
	if rec.Code != http.StatusOK {
		t.Fatalf("form status = %d", rec.Code)
	}
	form := mustFind(t, rec, "Form")
	if form["submitUrl"] != "." {
		t.Errorf("submitUrl = %v", form["submitUrl"])
	}

	rec = f.postForm(t, "/admin/api/tracks/create", url.Values{
		"title":  {"Blue Train"},
		"artist": {"Coltrane"},
		"plays":  {"12"},
		"liked":  {"on"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	target := redirectURL(t, rec)
	if target != "/admin/tracks/1" {
		t.Errorf("redirect = %q, want /admin/tracks/1", target)
	}

	rec = f.get(t, "/admin/api/tracks/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d", rec.Code)
	}
	details := mustFind(t, rec, "Details")
	data := details["data"].(map[string]any)
	if data["title"] != "Blue Train" || data["plays"] != float64(12) || data["liked"] != true {
		t.Errorf("detail data = %v", data)
	}
}

func TestCreateJSONPayload(t *testing.T) {
	f := newFixture(t)

	rec := f.postJSON(t, "/admin/api/tracks/create",
		`{"title":"Giant Steps","artist":"Coltrane","plays":3}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := redirectURL(t, rec); got != "/admin/tracks/1" {
		t.Errorf("redirect = %q", got)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.postForm(t, "/admin/api/tracks/create", url.Values{
		"artist": {""},
		"plays":  {"abc"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var payload struct {
		Detail struct {
			Form []components.FormError `json:"form"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode 422: %v", err)
	}

	kinds := map[string]string{}
	for _, fe := range payload.Detail.Form {
		if len(fe.Loc) != 1 {
			t.Errorf("loc = %v", fe.Loc)
			continue
		}
		kinds[fe.Loc[0]] = fe.Type
	}
	if kinds["title"] != "missing" {
		t.Errorf("title error = %q, want missing", kinds["title"])
	}
	if kinds["artist"] != "missing" {
		t.Errorf("artist error = %q, want missing", kinds["artist"])
	}
	if kinds["plays"] != "value_error" {
		t.Errorf("plays error = %q, want value_error", kinds["plays"])
	}

	// Nothing was written.
	count, err := f.db.DB().NewSelect().Model((*track)(nil)).Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("rows after rejected create = %d", count)
	}
}

func TestEditFlow(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &track{Title: "draft", Artist: "someone", Plays: 1})

	rec := f.get(t, "/admin/api/tracks/1/edit")
	if rec.Code != http.StatusOK {
		t.Fatalf("edit form status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"initial":"draft"`) {
		t.Errorf("edit form should prefill current values:\n%s", body)
	}

	rec = f.postForm(t, "/admin/api/tracks/1/edit", url.Values{
		"title":  {"final"},
		"artist": {"someone"},
		"plays":  {"2"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := redirectURL(t, rec); got != "/admin/tracks/1" {
		t.Errorf("redirect = %q", got)
	}

	var updated track
	if err := f.db.DB().NewSelect().Model(&updated).Where("id = 1").Scan(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Title != "final" || updated.Plays != 2 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestEditClearsOmittedFields(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &track{Title: "anthem", Artist: "band", Plays: 9, Liked: true, Notes: "keeper"})

	// Browsers omit unchecked checkboxes entirely and post empty strings
	// for cleared inputs; both must reset the stored value.
	rec := f.postForm(t, "/admin/api/tracks/1/edit", url.Values{
		"title":  {"anthem"},
		"artist": {"band"},
		"plays":  {""},
		"notes":  {""},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d: %s", rec.Code, rec.Body.String())
	}

	var updated track
	if err := f.db.DB().NewSelect().Model(&updated).Where("id = 1").Scan(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if updated.Liked {
		t.Error("unchecked checkbox should set the boolean back to false")
	}
	if updated.Notes != "" {
		t.Errorf("cleared nullable field = %q, want empty", updated.Notes)
	}
	if updated.Plays != 0 {
		t.Errorf("cleared field with default = %d, want 0", updated.Plays)
	}

	rec = f.get(t, "/admin/api/tracks/1")
	details := mustFind(t, rec, "Details")
	data := details["data"].(map[string]any)
	if data["liked"] != false {
		t.Errorf("detail liked = %v, want false", data["liked"])
	}
}

func TestEditMissingRecord(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/admin/api/tracks/99/edit")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET status = %d, want 404", rec.Code)
	}

	rec = f.postForm(t, "/admin/api/tracks/99/edit", url.Values{
		"title":  {"x"},
		"artist": {"y"},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("POST status = %d, want 404", rec.Code)
	}
}

func TestWriteConstraintViolation(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &track{Title: "taken", Artist: "band"})

	// Inserting a duplicate of the unique title fails at the database and
	// surfaces as a 400 error page, not a 500.
	rec := f.postForm(t, "/admin/api/tracks/create", url.Values{
		"title":  {"taken"},
		"artist": {"someone else"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	heading := mustFind(t, rec, "Heading")
	if heading["text"] != "Error" {
		t.Errorf("heading = %v, want Error", heading["text"])
	}
	if findComponent(decodeBody(t, rec), "Paragraph") == nil {
		t.Error("error page should explain the failure")
	}

	// The failed insert was rolled back.
	count, err := f.db.DB().NewSelect().Model((*track)(nil)).Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows after failed create = %d, want 1", count)
	}

	// Updating into a duplicate fails the same way and keeps the old row.
	f.seed(t, &track{Title: "second", Artist: "band"})
	rec = f.postForm(t, "/admin/api/tracks/2/edit", url.Values{
		"title":  {"taken"},
		"artist": {"band"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("edit status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
	var second track
	if err := f.db.DB().NewSelect().Model(&second).Where("id = 2").Scan(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if second.Title != "second" {
		t.Errorf("title after failed edit = %q, want second", second.Title)
	}
}

func TestDeleteThenDetail(t *testing.T) {
	f := newFixture(t)
	f.seed(t, &track{Title: "doomed", Artist: "band"})

	rec := f.postForm(t, "/admin/api/tracks/1/delete", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if got := redirectURL(t, rec); got != "/admin/tracks/" {
		t.Errorf("redirect = %q, want list", got)
	}

	rec = f.get(t, "/admin/api/tracks/1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("detail after delete = %d, want 404", rec.Code)
	}
	var detail map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode 404: %v", err)
	}
	if detail["detail"] != "Not found" {
		t.Errorf("404 body = %v", detail)
	}

	// Deleting again is also a 404.
	rec = f.postForm(t, "/admin/api/tracks/1/delete", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete = %d, want 404", rec.Code)
	}
}

func TestNonNumericPK(t *testing.T) {
	f := newFixture(t)
	rec := f.get(t, "/admin/api/tracks/not-a-number")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCapabilityFlagsRemoveRoutes(t *testing.T) {
	f := newFixture(t, WithCreate(false), WithEdit(false), WithDelete(false))
	f.seed(t, &track{Title: "still listed", Artist: "band"})

	for _, path := range []string{
		"/admin/api/tracks/create",
		"/admin/api/tracks/1/edit",
	} {
		if rec := f.get(t, path); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, rec.Code)
		}
	}
	if rec := f.postForm(t, "/admin/api/tracks/1/delete", nil); rec.Code != http.StatusNotFound {
		t.Errorf("POST delete = %d, want 404", rec.Code)
	}

	// List still works, but without the create link or delete form.
	rec := f.get(t, "/admin/api/tracks/")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "Create New") {
		t.Error("list page offers create with the capability disabled")
	}

	rec = f.get(t, "/admin/api/tracks/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("detail status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "Edit") || strings.Contains(body, "Delete") {
		t.Error("detail page offers edit/delete with the capabilities disabled")
	}
}

func TestDetailsDisabledDropsRoute(t *testing.T) {
	f := newFixture(t, WithDetails(false))
	f.seed(t, &track{Title: "x", Artist: "y"})

	if rec := f.get(t, "/admin/api/tracks/1"); rec.Code != http.StatusNotFound {
		t.Errorf("detail = %d, want 404", rec.Code)
	}

	// Without details the pk column is not clickable.
	rec := f.get(t, "/admin/api/tracks/")
	table := mustFind(t, rec, "Table")
	first := table["columns"].([]any)[0].(map[string]any)
	if first["onClick"] != nil {
		t.Error("pk column links to a disabled detail page")
	}
}

func TestSimpleView(t *testing.T) {
	f := newFixture(t)

	called := false
	v := NewSimple("System Status", func(_ echo.Context, _ *Env) ([]components.Component, error) {
		called = true
		return []components.Component{components.Heading{Text: "All good", Level: 2}}, nil
	})
	if got := v.Slug(); got != "system-status" {
		t.Fatalf("Slug = %q", got)
	}
	if err := v.MountTo(f.e.Group("/admin"), f.env); err != nil {
		t.Fatalf("mount: %v", err)
	}

	rec := f.get(t, "/admin/api/system-status/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !called {
		t.Error("render function not called")
	}
	heading := mustFind(t, rec, "Heading")
	if heading["text"] != "All good" {
		t.Errorf("heading = %v", heading)
	}

	if !v.IsVisible() {
		t.Error("simple views default to visible")
	}
	if v.Hidden().IsVisible() {
		t.Error("Hidden should hide the view")
	}
}

func TestSimpleViewErrors(t *testing.T) {
	f := newFixture(t)

	v := NewSimple("Broken", func(_ echo.Context, _ *Env) ([]components.Component, error) {
		return nil, errors.New("boom")
	})
	if err := v.MountTo(f.e.Group("/admin"), f.env); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if rec := f.get(t, "/admin/api/broken/"); rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}

	missing := NewSimple("No Render", nil)
	if err := missing.MountTo(f.e.Group("/admin"), f.env); err == nil {
		t.Error("mounting without a render function should fail")
	}
}

func TestIndexView(t *testing.T) {
	f := newFixture(t)
	f.env.ModelLinks = []layout.NavItem{{Label: "Tracks", URL: "/tracks/"}}

	idx := NewIndex(nil)
	if err := idx.MountTo(f.e.Group("/admin"), f.env); err != nil {
		t.Fatalf("mount: %v", err)
	}

	rec := f.get(t, "/admin/api/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Welcome to Test Admin") {
		t.Errorf("missing welcome heading:\n%s", body)
	}
	link := mustFind(t, rec, "Link")
	if link == nil {
		t.Fatal("dashboard should link to model views")
	}
}

func TestShellRoutes(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/admin/tracks/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<!doctype html>") && !strings.Contains(body, "<!DOCTYPE html>") {
		t.Errorf("shell route should serve HTML:\n%.200s", body)
	}
	if !strings.Contains(body, "/admin/api") {
		t.Error("shell should advertise the API root")
	}
}
