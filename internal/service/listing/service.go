package listing

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/domain/models"
)

const (
	// ErrorMessage is shown for every failed load, whatever the cause.
	ErrorMessage   = "Something went wrong. Please try again."
	LoadingMessage = "Loading products..."
	EmptyMessage   = "No products available."
)

// Lister is the slice of the products client this unit needs.
type Lister interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// ViewKind selects which of the four list renderings applies.
type ViewKind string

const (
	ViewLoading ViewKind = "loading"
	ViewError   ViewKind = "error"
	ViewEmpty   ViewKind = "empty"
	ViewItems   ViewKind = "items"
)

// View is a render snapshot of the list.
type View struct {
	Kind     ViewKind          `json:"kind"`
	Status   models.ListStatus `json:"status"`
	Message  string            `json:"message,omitempty"`
	Products []models.Product  `json:"products,omitempty"`
}

// Service holds the product collection shown on the dashboard. The
// collection is loaded once by Init and replaced wholesale by Refresh.
type Service struct {
	client Lister
	logger *zap.Logger

	mu          sync.Mutex
	initialized bool
	loading     bool
	status      models.ListStatus
	products    []models.Product
	errMsg      string
	seq         uint64
	fetches     int
}

// NewService wires a list in its initializing state.
func NewService(client Lister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		logger:  logger,
		loading: true,
		status:  models.ListInitializing,
	}
}

// Init performs the initial load. Later calls are no-ops.
func (s *Service) Init(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	s.mu.Unlock()

	s.load(ctx)
}

// Refresh discards the current collection and loads it again.
func (s *Service) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	s.load(ctx)
}

func (s *Service) load(ctx context.Context) {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.fetches++
	s.loading = true
	s.status = models.ListInitializing
	s.errMsg = ""
	s.mu.Unlock()

	items, err := s.client.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer load owns the state.
	if seq != s.seq {
		return
	}
	s.loading = false

	if err != nil {
		s.logger.Warn("list products failed", zap.Error(err))
		s.status = models.ListErrored
		s.errMsg = ErrorMessage
		return
	}

	s.products = items
	s.status = models.ListLoaded
	s.logger.Debug("products loaded", zap.Int("count", len(items)))
}

// Fetches reports how many loads this list has issued.
func (s *Service) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// View applies the render precedence: loading, then error, then empty, then items.
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.loading:
		return View{Kind: ViewLoading, Status: s.status, Message: LoadingMessage}
	case s.errMsg != "":
		return View{Kind: ViewError, Status: s.status, Message: s.errMsg}
	case len(s.products) == 0:
		return View{Kind: ViewEmpty, Status: s.status, Message: EmptyMessage}
	}

	items := make([]models.Product, len(s.products))
	copy(items, s.products)
	return View{Kind: ViewItems, Status: s.status, Products: items}
}
