package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/config"
	"github.com/mamadbah2/productdesk/internal/domain/models"
)

const productsPath = "/products"

// Client exposes the backend product API operations used by the front-end.
type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
}

// APIError is returned for any non-2xx response from the backend.
type APIError struct {
	StatusCode int
	// Message is the backend's "error" field; empty when the body carried none.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("products api error: status %d", e.StatusCode)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody mirrors the backend's {"error": "..."} payload.
type errorBody struct {
	Error string `json:"error"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a products API client using the provided configuration values.
func NewClient(cfg config.ProductsAPIConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())
	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}

	return &APIClient{httpClient: restyClient}
}

// ListProducts fetches the full product collection.
func (c *APIClient) ListProducts(ctx context.Context) ([]models.Product, error) {
	var result []models.Product

	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&result).
		Get(productsPath)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	if result == nil {
		result = []models.Product{}
	}
	return result, nil
}

// CreateProduct posts a new product and returns the backend's created record.
// Bodies are decoded here rather than through resty so that an unreadable
// reply, including an empty one, fails with the decoder's error.
func (c *APIClient) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(productsPath)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if !resp.IsSuccess() {
		var body errorBody
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: body.Error}
	}

	result := new(models.Product)
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return result, nil
}
