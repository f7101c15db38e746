package creation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/domain/models"
	"github.com/mamadbah2/productdesk/pkg/clients/products"
)

// ErrBusy is returned when a submission is attempted while another is in flight.
var ErrBusy = errors.New("a submission is already in progress")

// ErrUnknownField indicates a field name the product form does not have.
var ErrUnknownField = errors.New("unknown form field")

const (
	// FallbackErrorMessage is shown when the backend rejects a product without a message.
	FallbackErrorMessage = "Failed to add product"

	LabelIdle = "Add Product"
	LabelBusy = "Adding..."
)

// Creator is the slice of the products client this unit needs.
type Creator interface {
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
}

// View is a render snapshot of the form.
type View struct {
	Form        models.ProductForm      `json:"form"`
	Status      models.SubmissionStatus `json:"status"`
	Busy        bool                    `json:"busy"`
	Error       string                  `json:"error,omitempty"`
	ButtonLabel string                  `json:"button_label"`
}

// Service owns the create-product form: its fields, its submission state and
// the outcome of the last submission.
type Service struct {
	client    Creator
	onCreated func(models.Product)
	logger    *zap.Logger

	mu     sync.Mutex
	form   models.ProductForm
	status models.SubmissionStatus
	errMsg string
}

// NewService wires a form. onCreated may be nil.
func NewService(client Creator, onCreated func(models.Product), logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:    client,
		onCreated: onCreated,
		logger:    logger,
		status:    models.SubmissionIdle,
	}
}

// SetField replaces the value of a single form field.
func (s *Service) SetField(field models.FormField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.form.With(field, value)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	s.form = next
	return nil
}

// Submit sends the current form to the backend. On success the form is cleared
// and the creation callback fires once with the created product. On failure the
// form is left as is and the error message is kept for display.
func (s *Service) Submit(ctx context.Context) (*models.Product, error) {
	s.mu.Lock()
	if s.status.Busy() {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.status = models.SubmissionSubmitting
	s.errMsg = ""
	form := s.form
	s.mu.Unlock()

	outcome := models.SubmissionFailed
	var message string
	defer func() {
		s.mu.Lock()
		s.status = outcome
		s.errMsg = message
		s.mu.Unlock()
	}()

	req := BuildRequest(form)
	s.logger.Debug("submitting product", zap.String("name", req.Name), zap.Bool("quantity_parsed", req.Quantity != nil))

	product, err := s.client.CreateProduct(ctx, req)
	if err != nil {
		message = ErrorMessage(err)
		s.logger.Warn("create product failed", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.form = models.ProductForm{}
	s.mu.Unlock()
	outcome = models.SubmissionSucceeded

	s.logger.Info("product created", zap.Stringer("id", product.ID), zap.String("name", product.Name))

	if s.onCreated != nil {
		s.onCreated(*product)
	}
	return product, nil
}

// View returns the current render state.
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	label := LabelIdle
	if s.status.Busy() {
		label = LabelBusy
	}
	return View{
		Form:        s.form,
		Status:      s.status,
		Busy:        s.status.Busy(),
		Error:       s.errMsg,
		ButtonLabel: label,
	}
}

// BuildRequest converts form text into the wire payload.
func BuildRequest(form models.ProductForm) models.CreateProductRequest {
	req := models.CreateProductRequest{
		Name:        form.Name,
		Description: form.Description,
	}
	if qty, ok := ParseQuantity(form.Quantity); ok {
		req.Quantity = &qty
	}
	return req
}

// ParseQuantity reads the leading integer of text, ignoring leading whitespace
// and anything after the digits ("5.7" is 5, "12abc" is 12). A "0x" prefix
// switches to hexadecimal. It reports false when there are no leading digits
// or the value overflows an int.
func ParseQuantity(text string) (int, bool) {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)

	sign := ""
	if trimmed != "" && (trimmed[0] == '+' || trimmed[0] == '-') {
		sign, trimmed = trimmed[:1], trimmed[1:]
	}

	base, isDigit := 10, isDecimal
	if len(trimmed) > 1 && trimmed[0] == '0' && (trimmed[1] == 'x' || trimmed[1] == 'X') {
		base, isDigit = 16, isHex
		trimmed = trimmed[2:]
	}

	end := 0
	for end < len(trimmed) && isDigit(trimmed[end]) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(sign+trimmed[:end], base, strconv.IntSize)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func isDecimal(c byte) bool { return c >= '0' && c <= '9' }

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ErrorMessage turns a create failure into the text shown to the user.
func ErrorMessage(err error) string {
	if apiErr, ok := products.AsAPIError(err); ok {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return FallbackErrorMessage
	}
	return err.Error()
}
