package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/application/admin"
	"github.com/jhoicas/catalog-admin/internal/application/catalog"
	"github.com/jhoicas/catalog-admin/internal/application/dto"
	"github.com/jhoicas/catalog-admin/internal/domain/entity"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/exchange"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/media"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/catalog-admin/internal/interfaces/http"
)

var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newAdminApp(t *testing.T) *fiber.App {
	t.Helper()
	db := memory.NewDatabase(entity.CatalogModels()...)
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)
	store, err := media.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	site := admin.NewSite(
		admin.SiteConfig{Title: catalog.DefaultSiteTitle, Header: catalog.DefaultSiteHeader, IndexTitle: catalog.DefaultIndexTitle, ListPerPage: 100, MaxShowAll: 200, InlineExtra: 3},
		db, db,
		admin.WithClock(func() time.Time { return fixedNow }),
		admin.WithCodecs(exchange.Codecs()...),
		admin.WithMedia(store),
		admin.WithRecorder(rec),
	)
	require.NoError(t, catalog.Register(site, catalog.Options{Now: func() time.Time { return fixedNow }, MediaURL: "/media/"}))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Site:          site,
		JWTSecret:     testJWTSecret,
		JWTIssuer:     testIssuer,
		Gatherer:      reg,
		Log:           zerolog.Nop(),
		CharsetReader: exchange.NewReader,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role string, body io.Reader, contentType string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func callJSON(t *testing.T, app *fiber.App, method, path, role string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return call(t, app, method, path, role, body, fiber.MIMEApplicationJSON)
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createProduct(t *testing.T, app *fiber.App, name string) int64 {
	t.Helper()
	resp := callJSON(t, app, http.MethodPost, "/admin/product/add", apphttp.RoleStaff, dto.FormSubmission{
		Values: map[string]any{"name": name, "is_in_stock": true},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var rec dto.RecordResponse
	decode(t, resp, &rec)
	return rec.ID
}

func TestAdmin_IndexRequiresToken(t *testing.T) {
	app := newAdminApp(t)

	resp := call(t, app, http.MethodGet, "/admin/", "", nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/admin/", apphttp.RoleViewer, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var idx dto.IndexResponse
	decode(t, resp, &idx)
	assert.Equal(t, catalog.DefaultSiteTitle, idx.SiteTitle)
	require.Len(t, idx.Models, 3)
	assert.Equal(t, "product", idx.Models[1].Name)
	assert.True(t, idx.Models[1].ImportExport)
}

func TestAdmin_CreateAndList(t *testing.T) {
	app := newAdminApp(t)
	createProduct(t, app, "Taza azul")
	createProduct(t, app, "Plato hondo")

	resp := call(t, app, http.MethodGet, "/admin/product/?q=taza", apphttp.RoleViewer, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ChangeListResponse
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Pagination.ResultCount)
	assert.Equal(t, 2, list.Pagination.FullCount)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, "Taza azul", list.Rows[0].Label)
}

func TestAdmin_ListFiltersFromQueryString(t *testing.T) {
	app := newAdminApp(t)
	id := createProduct(t, app, "Taza azul")
	createProduct(t, app, "Plato hondo")

	resp := callJSON(t, app, http.MethodPatch, "/admin/product/", apphttp.RoleStaff, dto.ListEditRequest{
		Rows: map[string]map[string]any{itoa(id): {"is_in_stock": false}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var edit dto.ListEditResponse
	decode(t, resp, &edit)
	assert.Equal(t, 1, edit.Updated)

	resp = call(t, app, http.MethodGet, "/admin/product/?is_in_stock=false", apphttp.RoleViewer, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.ChangeListResponse
	decode(t, resp, &list)
	require.Len(t, list.Rows, 1)
	assert.Equal(t, id, list.Rows[0].ID)
}

func TestAdmin_ValidationErrorCarriesFields(t *testing.T) {
	app := newAdminApp(t)

	resp := callJSON(t, app, http.MethodPost, "/admin/product/add", apphttp.RoleStaff, dto.FormSubmission{
		Values: map[string]any{"name": ""},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Fields, "name")
}

func TestAdmin_ViewerCannotWrite(t *testing.T) {
	app := newAdminApp(t)

	resp := callJSON(t, app, http.MethodPost, "/admin/product/add", apphttp.RoleViewer, dto.FormSubmission{
		Values: map[string]any{"name": "Taza"},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdmin_Actions(t *testing.T) {
	app := newAdminApp(t)
	a := createProduct(t, app, "Taza")
	b := createProduct(t, app, "Plato")

	resp := callJSON(t, app, http.MethodPost, "/admin/product/actions", apphttp.RoleStaff, dto.ActionRequest{Action: "set_stock_out", IDs: []int64{a, b}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res dto.ActionResultResponse
	decode(t, resp, &res)
	assert.Equal(t, 2, res.Changed)
	assert.Equal(t, `2 producto(s) marcados como "Sin stock".`, res.Message)

	resp = callJSON(t, app, http.MethodPost, "/admin/product/actions", apphttp.RoleStaff, dto.ActionRequest{Action: "set_stock_out"})
	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "EMPTY_SELECTION", errBody.Code)
}

func TestAdmin_ChangeFormAndDelete(t *testing.T) {
	app := newAdminApp(t)
	id := createProduct(t, app, "Taza")
	path := "/admin/product/" + itoa(id)

	resp := call(t, app, http.MethodGet, path+"/change", apphttp.RoleViewer, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var form dto.FormResponse
	decode(t, resp, &form)
	require.NotNil(t, form.ID)
	assert.Equal(t, id, *form.ID)

	resp = callJSON(t, app, http.MethodPost, path+"/change", apphttp.RoleStaff, dto.FormSubmission{
		Values: map[string]any{"name": "Taza grande", "is_in_stock": true},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.RecordResponse
	decode(t, resp, &rec)
	assert.Equal(t, "Taza grande", rec.Values["name"])

	resp = call(t, app, http.MethodDelete, path, apphttp.RoleStaff, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, path+"/change", apphttp.RoleViewer, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdmin_InvalidIDAndUnknownModel(t *testing.T) {
	app := newAdminApp(t)

	resp := call(t, app, http.MethodGet, "/admin/product/abc/change", apphttp.RoleViewer, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/admin/order/", apphttp.RoleViewer, nil, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdmin_ExportAndImport(t *testing.T) {
	app := newAdminApp(t)
	createProduct(t, app, "Taza")

	resp := call(t, app, http.MethodGet, "/admin/product/export?format=csv", apphttp.RoleViewer, nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "product-2024-03-15.csv")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "Taza")

	csv := "name,is_in_stock\nCafetera,true\nJarra,false\n"
	resp = call(t, app, http.MethodPost, "/admin/product/import?format=csv&dry_run=true", apphttp.RoleStaff, strings.NewReader(csv), "text/csv")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep dto.ImportReport
	decode(t, resp, &rep)
	assert.True(t, rep.DryRun)
	assert.Equal(t, 2, rep.Created)

	// multipart + latin-1
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "productos.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("name,is_in_stock\nCami\xf3n,true\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp = call(t, app, http.MethodPost, "/admin/product/import?format=csv&encoding=latin-1", apphttp.RoleStaff, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &rep)
	assert.Equal(t, 1, rep.Created)

	resp = call(t, app, http.MethodGet, "/admin/product/?q=Cami%C3%B3n", apphttp.RoleViewer, nil, "")
	var list dto.ChangeListResponse
	decode(t, resp, &list)
	assert.Equal(t, 1, list.Pagination.ResultCount)
}

func TestAdmin_ImportUnknownEncoding(t *testing.T) {
	app := newAdminApp(t)
	resp := call(t, app, http.MethodPost, "/admin/product/import?format=csv&encoding=ebcdic", apphttp.RoleStaff, strings.NewReader("name\nx\n"), "text/csv")
	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decode(t, resp, &errBody)
	assert.Equal(t, "INVALID_ENCODING", errBody.Code)
}

func TestAdmin_UploadImage(t *testing.T) {
	app := newAdminApp(t)
	id := createProduct(t, app, "Taza")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "taza.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("\x89PNG\r\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp := call(t, app, http.MethodPost, "/admin/product/"+itoa(id)+"/upload/image", apphttp.RoleStaff, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rec dto.RecordResponse
	decode(t, resp, &rec)
	img, _ := rec.Values["image"].(string)
	assert.True(t, strings.HasSuffix(img, ".png"), "image=%q", img)
}

func TestAdmin_MetricsEndpoint(t *testing.T) {
	app := newAdminApp(t)
	a := createProduct(t, app, "Taza")
	resp := callJSON(t, app, http.MethodPost, "/admin/product/actions", apphttp.RoleStaff, dto.ActionRequest{Action: "set_stock_in", IDs: []int64{a}})
	resp.Body.Close()

	resp = call(t, app, http.MethodGet, "/metrics", "", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "catalog_admin_actions_total")
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
