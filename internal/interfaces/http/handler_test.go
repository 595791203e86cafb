package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wms-estanterias/internal/application/dto"
	"github.com/jhoicas/wms-estanterias/internal/application/warehouse"
	"github.com/jhoicas/wms-estanterias/internal/domain/entity"
	apphttp "github.com/jhoicas/wms-estanterias/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye una aplicación Fiber con la calle "Rua A" de una góndola en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *warehouse.Store) {
	t.Helper()
	return buildTestAppWith(t, entity.Aisle{Name: "Rua A", GondolaCount: 1})
}

// buildTestAppWith igual que buildTestApp con las calles indicadas. Usa la configuración
// por defecto de Fiber (sin Immutable), así que los buffers de petición se reutilizan.
func buildTestAppWith(t *testing.T, aisles ...entity.Aisle) (*fiber.App, *warehouse.Store) {
	t.Helper()
	store := warehouse.NewStore(nil, warehouse.Options{})
	require.NoError(t, store.Initialize(context.Background(), aisles))

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{Store: store, Logger: zerolog.Nop()})
	return app, store
}

// shelfURL codifica la posición como segmento de ruta.
func shelfURL(position, action string) string {
	u := "/api/shelf/" + url.PathEscape(position)
	if action != "" {
		u += "/" + action
	}
	return u
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doForm(t *testing.T, app *fiber.App, method, target string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func widgetBody() map[string]any {
	return map[string]any{"name": "Widget", "sku": "W-1", "quantity": 5, "unit": "un", "category": "Tools"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ocupar / vaciar
// ──────────────────────────────────────────────────────────────────────────────

func TestOccupy_DevuelveProductoYEstanteria(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.OccupyResponse](t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, "Widget", out.Product.Name)
	assert.Equal(t, "Rua A-01-01", out.Product.Position)
	assert.Equal(t, "occupied", out.Shelf.Status)
	require.NotNil(t, out.Shelf.ProductID)
	assert.Equal(t, out.Product.ID, *out.Shelf.ProductID)
}

func TestOccupy_YaOcupada_400(t *testing.T) {
	app, _ := buildTestApp(t)
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody()).Body.Close()

	resp := doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody())
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ALREADY_OCCUPIED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestOccupy_PosicionInexistente_404(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, shelfURL("Rua Z-01-01", "occupy"), widgetBody())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestOccupy_BorradorInvalido_400ConCampos(t *testing.T) {
	app, store := buildTestApp(t)
	body := widgetBody()
	body["quantity"] = 0
	delete(body, "name")

	resp := doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Fields, "name")
	assert.Contains(t, out.Fields, "quantity")
	assert.Equal(t, 0, store.Snapshot().Stats.Occupied)
}

func TestOccupy_CuerpoMalformado_400(t *testing.T) {
	app, _ := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, shelfURL("Rua A-01-01", "occupy"), bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestVacate_Flujo(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-02", "vacate"), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ALREADY_AVAILABLE", decode[dto.ErrorResponse](t, resp).Code)

	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-02", "occupy"), widgetBody()).Body.Close()
	resp = doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-02", "vacate"), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.VacateResponse](t, resp)
	assert.True(t, out.Success)
	assert.Equal(t, "available", out.Shelf.Status)
	assert.Nil(t, out.Shelf.ProductID)
}

func TestGetShelf_ConYSinProducto(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, shelfURL("Rua A-01-03", ""), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	empty := decode[dto.ShelfDetailResponse](t, resp)
	assert.Nil(t, empty.Product)

	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-03", "occupy"), widgetBody()).Body.Close()
	resp = doJSON(t, app, http.MethodGet, shelfURL("Rua A-01-03", ""), nil)
	full := decode[dto.ShelfDetailResponse](t, resp)
	require.NotNil(t, full.Product)
	assert.Equal(t, "W-1", full.Product.SKU)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_EditaCampos(t *testing.T) {
	app, _ := buildTestApp(t)
	occ := decode[dto.OccupyResponse](t, doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody()))

	body := widgetBody()
	body["name"] = "Widget Pro"
	body["quantity"] = 9
	resp := doJSON(t, app, http.MethodPut, "/api/product/"+occ.Product.ID, body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.EditProductResponse](t, resp)
	assert.Equal(t, "Widget Pro", out.Product.Name)
	assert.Equal(t, 9, out.Product.Quantity)
	assert.Equal(t, "Rua A-01-01", out.Product.Position)
	assert.NotNil(t, out.Product.UpdatedAt)

	resp = doJSON(t, app, http.MethodGet, "/api/product/"+occ.Product.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Widget Pro", decode[dto.ProductResponse](t, resp).Name)
}

func TestUpdateProduct_Inexistente_404(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/product/PROD-nope", widgetBody())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListProducts(t *testing.T) {
	app, _ := buildTestApp(t)
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-02", "occupy"), widgetBody()).Body.Close()
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody()).Body.Close()

	out := decode[dto.ProductListResponse](t, doJSON(t, app, http.MethodGet, "/api/products", nil))
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Rua A-01-01", out.Items[0].Position)
	assert.Equal(t, "Rua A-01-02", out.Items[1].Position)
}

// ──────────────────────────────────────────────────────────────────────────────
// Almacén, búsqueda y transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestSnapshot_Estadisticas(t *testing.T) {
	app, _ := buildTestApp(t)
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody()).Body.Close()

	resp := doJSON(t, app, http.MethodGet, "/api/warehouse", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.WarehouseResponse](t, resp)
	assert.Len(t, out.Aisles, 1)
	assert.Len(t, out.Shelves, 6)
	assert.Len(t, out.Products, 1)
	assert.Equal(t, dto.StatsResponse{Total: 6, Available: 5, Occupied: 1, OccupancyRate: 16.7}, out.Stats)
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, "add", out.Transactions[0].Type)
}

func TestSearch_TerminoYFiltro(t *testing.T) {
	app, _ := buildTestApp(t)
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-04", "occupy"), widgetBody()).Body.Close()

	out := decode[[]dto.ShelfResponse](t, doJSON(t, app, http.MethodGet, "/api/search?q=widget&filter=occupied", nil))
	require.Len(t, out, 1)
	assert.Equal(t, "Rua A-01-04", out[0].Position)

	out = decode[[]dto.ShelfResponse](t, doJSON(t, app, http.MethodGet, "/api/search?filter=available", nil))
	assert.Len(t, out, 5)

	out = decode[[]dto.ShelfResponse](t, doJSON(t, app, http.MethodGet, "/api/search?q=nada", nil))
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSearch_FiltroDesconocido_400(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/search?filter=broken", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTransactions_Paginacion(t *testing.T) {
	app, _ := buildTestApp(t)
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), widgetBody()).Body.Close()
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-01", "vacate"), nil).Body.Close()
	doJSON(t, app, http.MethodPost, shelfURL("Rua A-01-02", "occupy"), widgetBody()).Body.Close()

	out := decode[dto.TransactionListResponse](t, doJSON(t, app, http.MethodGet, "/api/transactions?limit=2&offset=0", nil))
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, 2, out.Page.Limit)
	require.Len(t, out.Items, 2)

	resp := doJSON(t, app, http.MethodGet, "/api/transactions?limit=9999", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado del store tras peticiones posteriores
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_EstadoIntactoTrasOtrasPeticiones(t *testing.T) {
	app, store := buildTestAppWith(t, entity.Aisle{Name: "A", GondolaCount: 1})
	occ := decode[dto.OccupyResponse](t, doJSON(t, app, http.MethodPost, "/api/shelf/A-01-01/occupy", widgetBody()))
	id := occ.Product.ID

	resp := doJSON(t, app, http.MethodPut, "/api/product/"+id, widgetBody())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()

	filler := "/api/product/" + strings.Repeat("X", len(id))
	for i := 0; i < 20; i++ {
		doJSON(t, app, http.MethodGet, filler, nil).Body.Close()
		doJSON(t, app, http.MethodPost, "/api/shelf/A-01-0"+strconv.Itoa(2+i%5)+"/vacate", nil).Body.Close()
	}

	p, err := store.Product(id)
	require.NoError(t, err)
	assert.Equal(t, "A-01-01", p.Position)

	snap := store.Snapshot()
	assert.Len(t, snap.Products, 1)
	assert.Equal(t, 1, snap.Stats.Occupied)

	txns, total := store.Transactions(0, 0)
	require.Equal(t, 2, total)
	for _, txn := range txns {
		assert.Equal(t, id, txn.ProductID)
		assert.Equal(t, "A-01-01", txn.Position)
	}
}

func TestOccupy_Formulario_EstadoIntactoTrasOtrasPeticiones(t *testing.T) {
	app, store := buildTestApp(t)
	form := url.Values{
		"name": {"Widget"}, "sku": {"W-1"}, "quantity": {"5"},
		"unit": {"un"}, "category": {"Tools"}, "description": {"caja azul"},
	}
	resp := doForm(t, app, http.MethodPost, shelfURL("Rua A-01-01", "occupy"), form)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	id := decode[dto.OccupyResponse](t, resp).Product.ID

	junk := url.Values{
		"name": {"ZZZZZZ"}, "sku": {"Q-9"}, "quantity": {"x"},
		"unit": {"qq"}, "category": {"Junk!"}, "description": {"XXXXXXXXX"},
	}
	for i := 0; i < 20; i++ {
		r := doForm(t, app, http.MethodPost, shelfURL("Rua A-01-02", "occupy"), junk)
		assert.Equal(t, fiber.StatusBadRequest, r.StatusCode)
		r.Body.Close()
	}

	p, err := store.Product(id)
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "W-1", p.SKU)
	assert.Equal(t, "un", p.Unit)
	assert.Equal(t, "Tools", p.Category)
	assert.Equal(t, "caja azul", p.Description)
	assert.Equal(t, "Rua A-01-01", p.Position)

	txns, _ := store.Transactions(0, 0)
	require.Len(t, txns, 1)
	assert.Equal(t, "Produto Widget adicionado à prateleira Rua A-01-01", txns[0].Details)
}
