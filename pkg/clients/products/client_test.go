package products

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/productdesk/internal/config"
	"github.com/mamadbah2/productdesk/internal/domain/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ProductsAPIConfig{BaseURL: srv.URL + "/"}, nil)
}

func intPtr(n int) *int { return &n }

func TestListProducts_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Notebook","description":"A5 ruled","quantity":100},{"id":"p-2","name":"Pen","description":"Blue ink","quantity":250}]`)
	})

	got, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Product{
		{ID: "1", Name: "Notebook", Description: "A5 ruled", Quantity: 100},
		{ID: "p-2", Name: "Pen", Description: "Blue ink", Quantity: 250},
	}, got)
}

func TestListProducts_EmptyArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	got, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListProducts_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "maintenance")
	})

	_, err := client.ListProducts(context.Background())
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestListProducts_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, "<html>oops</html>")
	})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestCreateProduct_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "Widget", "description": "A widget", "quantity": float64(5)}, body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":1,"name":"Widget","description":"A widget","quantity":5}`)
	})

	got, err := client.CreateProduct(context.Background(), models.CreateProductRequest{
		Name: "Widget", Description: "A widget", Quantity: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, &models.Product{ID: "1", Name: "Widget", Description: "A widget", Quantity: 5}, got)
}

func TestCreateProduct_NullQuantity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Widget","description":"","quantity":null}`, string(raw))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Quantity is required"}`)
	})

	_, err := client.CreateProduct(context.Background(), models.CreateProductRequest{Name: "Widget"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Quantity is required", apiErr.Message)
	assert.Equal(t, "Quantity is required", err.Error())
}

func TestCreateProduct_ErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := client.CreateProduct(context.Background(), models.CreateProductRequest{Name: "Widget", Quantity: intPtr(1)})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, "products api error: status 500", err.Error())
}

func TestCreateProduct_UnreadableErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>Internal Server Error</html>")
	})

	_, err := client.CreateProduct(context.Background(), models.CreateProductRequest{Name: "Widget", Quantity: intPtr(1)})
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
	assert.Contains(t, err.Error(), "invalid character '<'")
}

func TestCreateProduct_EmptySuccessBody(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNoContent} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		got, err := client.CreateProduct(context.Background(), models.CreateProductRequest{Name: "Widget", Quantity: intPtr(1)})
		assert.Nil(t, got, "status %d", status)
		require.Error(t, err, "status %d", status)
		assert.Equal(t, "create product: unexpected end of JSON input", err.Error())
	}
}

func TestCreateProduct_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(config.ProductsAPIConfig{BaseURL: srv.URL}, nil)

	_, err := client.CreateProduct(context.Background(), models.CreateProductRequest{Name: "Widget", Quantity: intPtr(1)})
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
	assert.Contains(t, err.Error(), "create product")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = io.WriteString(w, `[]`)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(config.ProductsAPIConfig{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil)

	_, err := client.ListProducts(context.Background())
	assert.Error(t, err)
}
