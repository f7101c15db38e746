package dashboard

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/productdesk/internal/domain/models"
	"github.com/mamadbah2/productdesk/internal/service/creation"
	"github.com/mamadbah2/productdesk/internal/service/listing"
	"github.com/mamadbah2/productdesk/pkg/clients/products"
)

// View composes the form and list renderings.
type View struct {
	RefreshCount int           `json:"refresh_count"`
	Form         creation.View `json:"form"`
	List         listing.View  `json:"list"`
}

// Dashboard mounts the create form next to the product list and refreshes the
// list after every successful creation. It holds no product data itself.
type Dashboard struct {
	form   *creation.Service
	list   *listing.Service
	logger *zap.Logger

	mu sync.Mutex
	// counter is bumped by the creation callback; listed is its value at the
	// last list load.
	counter int
	listed  int
	// fresh is set when a submission refreshed the list and no page has
	// rendered it yet.
	fresh bool
}

// New builds a dashboard backed by client.
func New(client products.Client, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Dashboard{logger: logger}
	d.list = listing.NewService(client, logger.Named("listing"))
	d.form = creation.NewService(client, d.productAdded, logger.Named("creation"))
	return d
}

func (d *Dashboard) productAdded(models.Product) {
	d.mu.Lock()
	d.counter++
	d.mu.Unlock()
}

// Mount runs the list's initial load. Repeated calls do nothing.
func (d *Dashboard) Mount(ctx context.Context) {
	d.list.Init(ctx)
}

// Remount reloads the list for a full page render, the way a page load mounts
// the list anew. A list just refreshed by a submission is rendered as is, so a
// creation followed by its redirect still costs exactly one extra fetch.
func (d *Dashboard) Remount(ctx context.Context) {
	d.mu.Lock()
	fresh := d.fresh
	d.fresh = false
	d.mu.Unlock()

	if fresh {
		return
	}
	d.list.Refresh(ctx)
}

// SetField forwards a single field edit to the form.
func (d *Dashboard) SetField(field models.FormField, value string) error {
	return d.form.SetField(field, value)
}

// Submit submits the form. Once the submission, including its callback, has
// returned, a changed counter triggers exactly one list refresh.
func (d *Dashboard) Submit(ctx context.Context) (*models.Product, error) {
	product, err := d.form.Submit(ctx)
	d.syncList(ctx)
	return product, err
}

func (d *Dashboard) syncList(ctx context.Context) {
	d.mu.Lock()
	if d.counter == d.listed {
		d.mu.Unlock()
		return
	}
	d.listed = d.counter
	d.fresh = true
	d.mu.Unlock()

	d.logger.Debug("refreshing product list")
	d.list.Refresh(ctx)
}

// View returns the current render state of both units.
func (d *Dashboard) View() View {
	d.mu.Lock()
	count := d.counter
	d.mu.Unlock()

	return View{
		RefreshCount: count,
		Form:         d.form.View(),
		List:         d.list.View(),
	}
}
