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
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/auth"
	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// apiFixture levanta la API completa sobre el almacén en memoria con un admin y un usuario.
type apiFixture struct {
	app        *fiber.App
	adminToken string
	userToken  string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	log := logger.Nop()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store, true)
	repos := store.Repos()

	authUC := auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	}, log)
	ctx := context.Background()
	_, err := authUC.EnsureUser(ctx, "admin", "admin", auth.RolesFor(true))
	require.NoError(t, err)
	_, err = authUC.EnsureUser(ctx, "user", "user", auth.RolesFor(false))
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		Finder:      catalog.NewFinderUseCase(repos, 10),
		CategoryUC:  catalog.NewCategoryUseCase(tx, log),
		ProductUC:   catalog.NewProductUseCase(tx, log),
		PriceUC:     catalog.NewPriceUseCase(tx, log),
		PriceListUC: catalog.NewPriceListUseCase(repos, pdf.NewMarotoPDFGenerator(), "Lista de precios"),
		JWTSecret:   testJWTSecret,
	})

	f := &apiFixture{app: app}
	f.adminToken = f.login(t, "admin", "admin")
	f.userToken = f.login(t, "user", "user")
	return f
}

func (f *apiFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e.Code
}

func TestAPI_FlujoCompleto(t *testing.T) {
	f := newAPI(t)

	// Categoría con padre nuevo: el padre se crea en el primer uso.
	resp := f.do(t, http.MethodPost, "/api/categories", f.adminToken, dto.CategoryRequest{
		Name: "Laptops", Parent: &dto.CategoryRef{Name: "Electrónica"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var laptops dto.CategoryResponse
	decode(t, resp, &laptops)
	require.NotNil(t, laptops.Parent)
	assert.Equal(t, "Electrónica", laptops.Parent.Name)

	// Mismo nombre: se actualiza en su lugar y sigue siendo 201.
	resp = f.do(t, http.MethodPost, "/api/categories", f.adminToken, dto.CategoryRequest{Name: "Laptops"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var again dto.CategoryResponse
	decode(t, resp, &again)
	assert.Equal(t, laptops.ID, again.ID)

	resp = f.do(t, http.MethodPost, "/api/products", f.adminToken, dto.CreateProductRequest{
		Name: "ThinkPad", Category: &dto.CategoryRef{Name: "Laptops"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var product dto.ProductResponse
	decode(t, resp, &product)

	resp = f.do(t, http.MethodPost, "/api/prices", f.adminToken, dto.CreatePriceRequest{
		Product: &dto.ProductRef{Name: "ThinkPad"}, Amount: 1500, Currency: "USD",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Búsquedas con rol USER.
	resp = f.do(t, http.MethodGet, "/api/prices/price_range-1000-2000", f.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var prices []dto.PriceResponse
	decode(t, resp, &prices)
	require.Len(t, prices, 1)
	assert.Equal(t, int64(1500), prices[0].Amount)

	resp = f.do(t, http.MethodGet, "/api/categories/"+url.PathEscape("Electrónica"), f.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cats []dto.CategoryResponse
	decode(t, resp, &cats)
	require.Len(t, cats, 1)
	assert.Equal(t, "Electrónica", cats[0].Name)

	resp = f.do(t, http.MethodGet, "/api/products?page=0&sortBy=name", f.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.PageResponse[dto.ProductResponse]
	decode(t, resp, &page)
	assert.Equal(t, int64(1), page.TotalElements)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "ThinkPad", page.Content[0].Name)

	resp = f.do(t, http.MethodGet, "/api/prices/report.pdf", f.userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "precios_")
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	// El producto con precios no se puede borrar.
	resp = f.do(t, http.MethodDelete, "/api/products/"+itoa(product.ID), f.adminToken, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "IN_USE", errorCode(t, resp))
}

func TestAPI_Autorizacion(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/categories", f.userToken, dto.CategoryRequest{Name: "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/categories", f.adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_Errores(t *testing.T) {
	f := newAPI(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"id inexistente", http.MethodGet, "/api/categories/999", nil, http.StatusNotFound, "NOT_FOUND"},
		{"token mal formado", http.MethodGet, "/api/products/category_id-abc", nil, http.StatusBadRequest, "VALIDATION"},
		{"orden no permitido", http.MethodGet, "/api/prices?sortBy=product", nil, http.StatusBadRequest, "VALIDATION"},
		{"nombre requerido", http.MethodPost, "/api/categories", dto.CategoryRequest{}, http.StatusBadRequest, "VALIDATION"},
		{"categoría inexistente", http.MethodPost, "/api/products", dto.CreateProductRequest{
			Name: "P", Category: &dto.CategoryRef{Name: "Nada"},
		}, http.StatusNotFound, "NOT_FOUND"},
		{"id no numérico", http.MethodPut, "/api/prices/abc", dto.UpdatePriceRequest{Amount: 1, Currency: "USD"}, http.StatusBadRequest, "INVALID_ID"},
		{"borrar inexistente", http.MethodDelete, "/api/prices/5", nil, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.do(t, tc.method, tc.path, f.adminToken, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestAPI_RegistroYLogin(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Username: "maria", Password: "secreta"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var user dto.UserResponse
	decode(t, resp, &user)
	assert.Equal(t, []string{"USER"}, user.Roles)

	resp = f.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Username: "maria", Password: "otra1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "USER_EXISTS", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "maria", Password: "mala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	token := f.login(t, "maria", "secreta")
	resp = f.do(t, http.MethodDelete, "/api/categories/1", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAPI_RutaInexistente(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/nada", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "HTTP_404", errorCode(t, resp))
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
