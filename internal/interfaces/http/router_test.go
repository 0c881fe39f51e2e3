package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoservicio-api/internal/application/auth"
	"github.com/jhoicas/autoservicio-api/internal/application/inventory"
	"github.com/jhoicas/autoservicio-api/internal/application/sales"
	"github.com/jhoicas/autoservicio-api/internal/application/tickets"
	"github.com/jhoicas/autoservicio-api/internal/application/usecase"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/filestore"
	infrahtml "github.com/jhoicas/autoservicio-api/internal/infrastructure/html"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/memory"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/metrics"
	"github.com/jhoicas/autoservicio-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/autoservicio-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app   *fiber.App
	store *memory.Store
}

// newTestAPI arma la API completa sobre el almacén en memoria y un afero.MemMapFs.
// Sin dispatcher: los tickets se generan bajo demanda.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	fs := afero.NewMemMapFs()
	ticketsDir, err := filestore.NewDir(fs, "tickets", "/tickets")
	require.NoError(t, err)
	reportsDir, err := filestore.NewDir(fs, "reports", "/reports")
	require.NoError(t, err)
	reportesDir, err := filestore.NewDir(fs, "reportes", "/reportes")
	require.NoError(t, err)

	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	gen := pdf.NewMarotoGenerator("test")

	productUC := usecase.NewProductUseCase(store.Products)
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(recorder))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(store.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		ProductUC:      productUC,
		UserUC:         usecase.NewUserUseCase(store.Users, 5*time.Minute),
		Reconciliation: inventory.NewReconciliationUseCase(store.Products, store.Counts, gen, reportsDir),
		CreateSale:     sales.NewCreateSaleUseCase(productUC, store.Sales, nil, recorder),
		SaleQuery:      sales.NewSaleQueryUseCase(store.Sales, store.Products),
		Reports:        sales.NewReportUseCase(store.Sales, store.Products, gen, infrahtml.NewRenderer(), reportsDir, reportesDir, nil),
		Tickets:        tickets.NewService(store.Sales, store.Products, gen, ticketsDir),
		JWTSecret:      testJWTSecret,
		Gatherer:       reg,
	})
	return &testAPI{app: app, store: store}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, authHeader string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func (a *testAPI) createProduct(t *testing.T, nombre string, precio float64, cantidad int) string {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/products", map[string]any{
		"nombre": nombre, "precio": precio, "cantidad": cantidad,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	return p["id"].(string)
}

func decodeError(t *testing.T, body []byte) map[string]string {
	t.Helper()
	var e map[string]string
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_VentaExitosa_DescuentaStock(t *testing.T) {
	api := newTestAPI(t)
	id := api.createProduct(t, "Pan", 1500, 10)

	resp, body := api.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productos": []map[string]any{{"producto": id, "cantidad": 2}},
		"total":     3000,
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var sale map[string]any
	require.NoError(t, json.Unmarshal(body, &sale))
	assert.Equal(t, "completada", sale["estado"])
	lines := sale["productos"].([]any)
	require.Len(t, lines, 1)
	assert.Equal(t, "Pan", lines[0].(map[string]any)["producto"].(map[string]any)["nombre"])

	resp, body = api.do(t, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []map[string]any
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 1)
	assert.EqualValues(t, 8, products[0]["cantidad"])
}

func TestAPI_VentaStockInsuficiente_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	id := api.createProduct(t, "Leche", 4200, 1)

	resp, body := api.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productos": []map[string]any{{"producto": id, "cantidad": 3}},
		"total":     12600,
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body)["message"], "Disponible: 1")
}

func TestAPI_VentaProductoInexistente_Retorna404(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productos": []map[string]any{{"producto": "6b1f7f6e-6a1d-4f0b-9d7e-2a3c4d5e6f70", "cantidad": 1}},
		"total":     100,
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_VentaSinProductos_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodPost, "/api/sales", map[string]any{"productos": []any{}, "total": 0}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "la venta debe incluir al menos un producto", decodeError(t, body)["message"])
}

func TestAPI_GetVenta_IDInvalido_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodGet, "/api/sales/no-es-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_EliminarProductoInexistente_Retorna404(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodDelete, "/api/products/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tickets y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_TicketPDF_DevuelveAdjunto(t *testing.T) {
	api := newTestAPI(t)
	id := api.createProduct(t, "Café", 2500, 5)
	_, body := api.do(t, http.MethodPost, "/api/sales", map[string]any{
		"productos": []map[string]any{{"producto": id, "cantidad": 1}},
		"total":     2500,
	}, "")
	var sale map[string]any
	require.NoError(t, json.Unmarshal(body, &sale))

	resp, pdfBody := api.do(t, http.MethodGet, "/api/tickets/"+sale["id"].(string)+"/pdf", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ticket_"+sale["id"].(string)+".pdf")
	assert.True(t, bytes.HasPrefix(pdfBody, []byte("%PDF")))
}

func TestAPI_TicketIDInvalido_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodGet, "/api/tickets/123/pdf", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ReporteInventarioSinProductos_Retorna404(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/api/inventory/report", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "no hay productos registrados para generar el reporte", decodeError(t, body)["message"])
}

func TestAPI_ResumenVentas_ConReporteURL(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/api/sales/report", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 0, out["totalVentas"])
	assert.Contains(t, out["reporteUrl"], "/reportes/reporte_")
}

func TestAPI_ReporteVentasFechaInvalida_Retorna400(t *testing.T) {
	api := newTestAPI(t)
	resp, _ := api.do(t, http.MethodGet, "/api/reports/sales?startDate=ayer&endDate=hoy", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ReporteVentasTipoDesconocido_ListaPlana(t *testing.T) {
	api := newTestAPI(t)
	resp, body := api.do(t, http.MethodGet, "/api/reports/sales?type=anual", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, "[]", string(body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroLoginYUsuarios(t *testing.T) {
	api := newTestAPI(t)
	reg := map[string]any{
		"username": "ana", "password": "secreta123", "nombre": "Ana", "apellido": "Pérez", "email": "ana@example.com",
	}
	resp, body := api.do(t, http.MethodPost, "/api/register", reg, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = api.do(t, http.MethodPost, "/api/register", reg, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "el usuario ya existe", decodeError(t, body)["message"])

	resp, _ = api.do(t, http.MethodPost, "/api/login", map[string]any{"username": "ana", "password": "mala"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = api.do(t, http.MethodPost, "/api/login", map[string]any{"username": "ana", "password": "secreta123"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var auth map[string]any
	require.NoError(t, json.Unmarshal(body, &auth))
	token := "Bearer " + auth["token"].(string)

	resp, _ = api.do(t, http.MethodGet, "/api/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = api.do(t, http.MethodGet, "/api/users", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(body), "password")

	resp, _ = api.do(t, http.MethodPost, "/api/logout", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_Metrics_ExponeContadores(t *testing.T) {
	api := newTestAPI(t)
	api.createProduct(t, "Agua", 1000, 1)

	resp, body := api.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "autoservicio_http_requests_total")
}
