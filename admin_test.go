package fastuiadmin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/hasansezertasan/fastui-admin/pkg/components"
	"github.com/hasansezertasan/fastui-admin/pkg/session"
	"github.com/hasansezertasan/fastui-admin/pkg/view"
)

type note struct {
	bun.BaseModel `bun:"table:notes"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Body string `bun:"body,notnull"`
}

type keyless struct {
	bun.BaseModel `bun:"table:keyless"`

	Body string `bun:"body"`
}

func testAdmin(t *testing.T, fns ...OptionFn) (*Admin, *echo.Echo) {
	t.Helper()

	db, err := session.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.NewCreateTable().Model((*note)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}

	e := echo.New()
	admin, err := New(e, db, fns...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return admin, e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestNewValidation(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Error("want error for nil host")
	}
	if _, err := New(echo.New(), nil); err == nil {
		t.Error("want error for nil db")
	}
}

func TestOptionNormalization(t *testing.T) {
	tests := []struct {
		in   []OptionFn
		want string
	}{
		{nil, "/admin"},
		{[]OptionFn{WithBaseURL("backoffice/")}, "/backoffice"},
		{[]OptionFn{WithBaseURL("/x/y/")}, "/x/y"},
		{[]OptionFn{WithBaseURL("")}, "/admin"},
		{[]OptionFn{WithBaseURL("/")}, "/admin"},
	}
	for _, tt := range tests {
		if got := NewOptions(tt.in...).BaseURL; got != tt.want {
			t.Errorf("BaseURL = %q, want %q", got, tt.want)
		}
	}
	if got := NewOptions(WithTitle("  ")).Title; got != "Admin" {
		t.Errorf("blank title should fall back, got %q", got)
	}
}

func TestAddModelRegistry(t *testing.T) {
	admin, _ := testAdmin(t)

	v, err := admin.AddModel((*note)(nil))
	if err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if v.Slug() != "notes" || v.Name() != "Notes" {
		t.Errorf("view = %q/%q", v.Name(), v.Slug())
	}
	if len(admin.Views()) != 1 {
		t.Errorf("Views = %d", len(admin.Views()))
	}

	// A second view on the same path is rejected.
	if _, err := admin.AddModel((*note)(nil)); err == nil {
		t.Error("want duplicate path error")
	}

	// Schema problems surface at registration.
	if _, err := admin.AddModel((*keyless)(nil)); err == nil {
		t.Error("want error for model without primary key")
	}
}

func TestRegistryFrozenAfterMount(t *testing.T) {
	admin, _ := testAdmin(t)
	if _, err := admin.AddModel((*note)(nil)); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if err := admin.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if _, err := admin.AddModel((*keyless)(nil)); err == nil || !strings.Contains(err.Error(), "after Mount") {
		t.Errorf("AddModel after mount = %v", err)
	}
	if err := admin.AddView(view.NewSimple("Later", nil)); err == nil {
		t.Error("AddView after mount should fail")
	}

	// Mounting again is a no-op, not a duplicate-route error.
	if err := admin.Mount(); err != nil {
		t.Errorf("second Mount: %v", err)
	}
}

func TestMountedRoutes(t *testing.T) {
	admin, e := testAdmin(t, WithTitle("Notebook"))
	if _, err := admin.AddModel((*note)(nil)); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if err := admin.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	// Dashboard shell and API.
	rec := get(e, "/admin/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Notebook") {
		t.Errorf("shell = %d:\n%.200s", rec.Code, rec.Body.String())
	}
	rec = get(e, "/admin/api/")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard api = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Notes") {
		t.Error("dashboard should link registered models")
	}

	// Model list API works end to end.
	rec = get(e, "/admin/api/notes/")
	if rec.Code != http.StatusOK {
		t.Errorf("list api = %d", rec.Code)
	}

	// Unknown paths under the base serve the SPA shell, not a 404.
	rec = get(e, "/admin/anything/deep/here")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<!doctype html>") {
		t.Errorf("catch-all = %d", rec.Code)
	}

	// Paths outside the base are untouched.
	if rec := get(e, "/elsewhere"); rec.Code != http.StatusNotFound {
		t.Errorf("outside base = %d, want 404", rec.Code)
	}
}

func TestCustomBaseURL(t *testing.T) {
	admin, e := testAdmin(t, WithBaseURL("/backoffice"))
	if _, err := admin.AddModel((*note)(nil)); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if err := admin.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	if admin.BaseURL() != "/backoffice" {
		t.Errorf("BaseURL = %q", admin.BaseURL())
	}
	if rec := get(e, "/backoffice/api/notes/"); rec.Code != http.StatusOK {
		t.Errorf("list api = %d", rec.Code)
	}
	if rec := get(e, "/admin/api/notes/"); rec.Code != http.StatusNotFound {
		t.Errorf("old base = %d, want 404", rec.Code)
	}
}

func TestHiddenViewsLeftOutOfNavbar(t *testing.T) {
	admin, e := testAdmin(t)
	if _, err := admin.AddModel((*note)(nil), view.WithVisible(false)); err != nil {
		t.Fatalf("AddModel: %v", err)
	}
	if err := admin.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	rec := get(e, "/admin/api/")
	var page []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Contains(rec.Body.String(), `"Notes"`) {
		t.Error("hidden view listed on the dashboard")
	}

	// Routes still exist for hidden views.
	if rec := get(e, "/admin/api/notes/"); rec.Code != http.StatusOK {
		t.Errorf("hidden view api = %d", rec.Code)
	}
}

func TestCustomIndexView(t *testing.T) {
	custom := view.NewIndex(func(_ echo.Context, _ *view.Env) ([]components.Component, error) {
		return []components.Component{components.Heading{Text: "Custom Home", Level: 1}}, nil
	})
	admin, e := testAdmin(t, WithIndexView(custom))
	if err := admin.Mount(); err != nil {
		t.Fatalf("Mount: %v", err)
	}

	rec := get(e, "/admin/api/")
	if !strings.Contains(rec.Body.String(), "Custom Home") {
		t.Errorf("custom index not served:\n%s", rec.Body.String())
	}
}
