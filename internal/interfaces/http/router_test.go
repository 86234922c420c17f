package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-inventario/internal/application/engine"
	"github.com/tu-usuario/pos-inventario/internal/application/reports"
	"github.com/tu-usuario/pos-inventario/internal/application/usecase"
	"github.com/tu-usuario/pos-inventario/internal/infrastructure/memory"
	apihttp "github.com/tu-usuario/pos-inventario/internal/interfaces/http"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	eng := engine.New(store, store.Products(), store.Movements(), store.Sales())

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		Engine:     eng,
		ProductUC:  usecase.NewProductUseCase(store.Products(), store.Movements(), store.Sales()),
		SaleUC:     usecase.NewSaleUseCase(store.Sales()),
		CategoryUC: usecase.NewCategoryUseCase(store.Categories(), store.Products()),
		SupplierUC: usecase.NewSupplierUseCase(store.Suppliers(), store.Products()),
		ReportUC:   reports.NewReportUseCase(store.Sales(), store.Reports(), nil),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

func createTestProduct(t *testing.T, app *fiber.App, barcode string, stock int) {
	t.Helper()
	resp, _ := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"barcode":       barcode,
		"title":         "Café 500g",
		"name":          "Café molido tradicional 500g",
		"cost_price":    "4.00",
		"sale_price":    "6.50",
		"tax_rate":      "16",
		"current_stock": stock,
		"min_stock":     3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAPICreateProductYDuplicado(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app, "7501031311309", 10)

	resp, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"barcode":    "7501031311309",
		"title":      "Otro",
		"name":       "Otro producto",
		"cost_price": "1.00",
		"sale_price": "2.00",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", body["code"])
}

func TestAPICreateProductValidacion(t *testing.T) {
	app := newTestApp(t)
	resp, body := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"title": "Sin barcode",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
	assert.NotEmpty(t, body["fields"])
}

func TestAPICheckBarcode(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app, "7501031311316", 5)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/check?barcode=7501031311316", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["exists"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/products/check?barcode=000", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["exists"])
}

func TestAPIVentaYStockInsuficiente(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app, "7501031311323", 2)

	resp, body := doJSON(t, app, http.MethodPost, "/api/sales", map[string]any{
		"barcode":  "7501031311323",
		"quantity": 2,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 0, body["new_stock"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/sales", map[string]any{
		"barcode":  "7501031311323",
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.EqualValues(t, 0, body["available"])
	assert.EqualValues(t, 1, body["requested"])
}

func TestAPIEntradaDeStock(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app, "7501031311330", 1)

	resp, body := doJSON(t, app, http.MethodPost, "/api/stock/add", map[string]any{
		"barcode":  "7501031311330",
		"quantity": 4,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, body["new_stock"])
}

func TestAPIDeleteProductoConHistorial(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app, "7501031311347", 5)

	resp, body := doJSON(t, app, http.MethodGet, "/api/products/7501031311347", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	id := body["id"].(string)

	resp, body = doJSON(t, app, http.MethodDelete, "/api/products/"+id, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestAPIReportesYStats(t *testing.T) {
	app := newTestApp(t)
	createTestProduct(t, app, "7501031311354", 10)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/sales", map[string]any{
		"barcode":  "7501031311354",
		"quantity": 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/reports?period=24h", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "24h", body["period"])

	resp, body = doJSON(t, app, http.MethodGet, "/api/stats", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total_products"])
}

func TestAPICategorias(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Bebidas"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/categories", map[string]any{"name": "Bebidas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/categories/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
