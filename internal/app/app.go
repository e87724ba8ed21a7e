package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"makwell-storefront/internal/cart"
	"makwell-storefront/internal/catalog"
	"makwell-storefront/internal/checkout"
	"makwell-storefront/internal/imageresolver"
	"makwell-storefront/internal/kvstore"
	"makwell-storefront/internal/listing"
	"makwell-storefront/internal/logger"
	"makwell-storefront/internal/metrics"
	"makwell-storefront/internal/preference"

	"go.uber.org/zap"
)

// DefaultCurrency prices the storefront when Deps leave Currency empty.
const DefaultCurrency = "INR"

// Deps are the collaborators one storefront session runs against.
type Deps struct {
	Catalog     *catalog.Store
	Images      *imageresolver.Resolver
	Store       kvstore.Store
	Checkout    checkout.Service
	Metrics     *metrics.Registry
	Currency    string
	PageSize    int
	SystemTheme preference.Theme
}

// App is the state of one storefront session. Every command runs under a
// single lock so a mutation and the snapshot it produces are one step.
type App struct {
	mu       sync.Mutex
	view     listing.ViewState
	catalog  *catalog.Store
	images   *imageresolver.Resolver
	cart     cart.Service
	prefs    preference.Service
	checkout checkout.Service
	metrics  *metrics.Registry
	currency string
	loading  atomic.Bool

	now        func() time.Time
	lastActive atomic.Int64
}

// New restores the persisted cart from deps.Store and starts with the
// default view.
func New(ctx context.Context, deps Deps) *App {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRegistry()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.NewStore(deps.Metrics)
	}
	if deps.Images == nil {
		deps.Images = imageresolver.New("", "")
	}
	if deps.Store == nil {
		deps.Store = kvstore.NewMemory()
	}
	if deps.Currency == "" {
		deps.Currency = DefaultCurrency
	}

	return &App{
		view:     listing.NewViewState(deps.PageSize),
		catalog:  deps.Catalog,
		images:   deps.Images,
		cart:     cart.NewService(ctx, cart.NewRepository(deps.Store), deps.Catalog, deps.Metrics),
		prefs:    preference.NewService(deps.Store, deps.SystemTheme),
		checkout: deps.Checkout,
		metrics:  deps.Metrics,
		currency: deps.Currency,
		now:      time.Now,
	}
}

// touch records activity for idle eviction. Callers hold a.mu.
func (a *App) touch() {
	a.lastActive.Store(a.now().UnixNano())
}

func (a *App) lastActivity() time.Time {
	return time.Unix(0, a.lastActive.Load())
}

// StartLoading fetches the catalog in the background. The returned channel
// receives the load outcome and is closed. Until then the catalog is empty.
func (a *App) StartLoading(ctx context.Context, loader catalog.Loader) <-chan error {
	done := make(chan error, 1)
	if !a.loading.CompareAndSwap(false, true) {
		done <- ErrLoadInProgress
		close(done)
		return done
	}

	go func() {
		defer close(done)
		defer a.loading.Store(false)
		done <- a.catalog.Load(ctx, loader)
	}()
	return done
}

// Snapshot renders the current state without changing it.
func (a *App) Snapshot(ctx context.Context) Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.touch()
	return a.snapshot(ctx)
}

// Dispatch applies cmd and returns the resulting snapshot. On error the
// state is unchanged and the snapshot reflects it.
func (a *App) Dispatch(ctx context.Context, cmd Command) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.touch()

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "app"),
		zap.String("command", cmd.Name()),
	)

	if err := a.apply(ctx, cmd); err != nil {
		log.Info("command rejected", zap.Error(err))
		return a.snapshot(ctx), err
	}

	log.Debug("command applied")
	return a.snapshot(ctx), nil
}

// DispatchAll applies cmds in order as one step. It stops at the first
// failing command; the ones before it stay applied.
func (a *App) DispatchAll(ctx context.Context, cmds ...Command) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.touch()

	for _, cmd := range cmds {
		if err := a.apply(ctx, cmd); err != nil {
			logger.FromCtx(ctx).Info("command rejected",
				zap.String("layer", "app"),
				zap.String("command", cmd.Name()),
				zap.Error(err),
			)
			return a.snapshot(ctx), err
		}
	}
	return a.snapshot(ctx), nil
}

func (a *App) apply(ctx context.Context, cmd Command) error {
	var err error

	switch c := cmd.(type) {
	case SetQuery:
		a.view = a.view.WithQuery(c.Text)
	case SetCategory:
		a.view = a.view.WithCategory(c.Category)
	case SetSort:
		a.view = a.view.WithSort(listing.ParseSortKey(string(c.Sort)))
	case SetPage:
		a.view = a.view.WithPage(c.Page)
	case AddToCart:
		_, err = a.cart.Add(ctx, c.ProductID)
	case SetQuantity:
		_, err = a.cart.SetQuantity(ctx, c.ProductID, c.Quantity)
	case RemoveFromCart:
		_, err = a.cart.Remove(ctx, c.ProductID)
	case ClearCart:
		_, err = a.cart.Clear(ctx)
	case ToggleTheme:
		_, err = a.prefs.ToggleTheme(ctx)
	case DismissCTA:
		_, err = a.prefs.DismissCTA(ctx)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}

	return err
}

// Checkout hands the current cart to the checkout service. The cart is
// left as is; clearing it is a separate command. An empty cart is rejected
// before the service is consulted.
func (a *App) Checkout(ctx context.Context) (*checkout.Receipt, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer a.touch()

	if a.cart.Ledger().Empty() {
		return nil, checkout.ErrEmptyCart
	}
	if a.checkout == nil {
		return nil, checkout.ErrMissingSink
	}
	return a.checkout.Checkout(ctx, a.cart.Ledger())
}

// Product returns one catalog product as a card.
func (a *App) Product(id string) (Card, bool) {
	p, ok := a.catalog.ByID(id)
	if !ok {
		return Card{}, false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return toCard(p, a.images, a.cart.Ledger(), a.currency), true
}

// Images returns the candidate list for a product's image.
func (a *App) Images(id string) ([]string, error) {
	p, ok := a.catalog.ByID(id)
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return a.images.Candidates(p.Image, p.ID), nil
}

// ImageStep is the answer to an image load failure.
type ImageStep struct {
	Cursor   int    `json:"cursor"`
	URL      string `json:"url"`
	Terminal bool   `json:"terminal"`
}

// AdvanceImage moves past the candidate at cursor after it failed to load.
func (a *App) AdvanceImage(id string, cursor int) (ImageStep, error) {
	candidates, err := a.Images(id)
	if err != nil {
		return ImageStep{}, err
	}

	next, url, terminal := imageresolver.Next(candidates, cursor)
	a.metrics.Counter(metrics.ImageFallbacks).Inc()
	if terminal {
		a.metrics.Counter(metrics.ImagePlaceholders).Inc()
	}
	return ImageStep{Cursor: next, URL: url, Terminal: terminal}, nil
}

func (a *App) Categories() []string {
	return a.catalog.Categories()
}

func (a *App) Facets() listing.Facets {
	return listing.BuildFacets(a.catalog.Products())
}

func (a *App) snapshot(ctx context.Context) Snapshot {
	products := a.catalog.Products()
	view, res := a.view.Compute(products)
	a.view = view

	ledger := a.cart.Ledger()
	summary := a.cart.Summary()

	status := CatalogStatus{
		Loading: !a.catalog.Loaded(),
		Loaded:  a.catalog.Loaded(),
		Count:   len(products),
	}
	if err := a.catalog.Err(); err != nil {
		status.Error = err.Error()
	}

	return Snapshot{
		View:       view,
		Listing:    toListing(res, a.images, ledger, a.currency),
		Categories: a.catalog.Categories(),
		Cart: CartView{
			Summary:       summary,
			SubtotalLabel: FormatMoney(summary.Subtotal, a.currency),
			Currency:      a.currency,
		},
		Preferences: a.prefs.Get(ctx),
		Catalog:     status,
	}
}
