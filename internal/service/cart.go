package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/robomart/toystore/internal/domain"
	"github.com/robomart/toystore/internal/event"
	"github.com/robomart/toystore/internal/repository"
	apperrors "github.com/robomart/toystore/pkg/errors"
)

// ChangeSubscriber is invoked synchronously after every successful cart
// mutation, once persistence has completed. Subscribers receive no payload;
// they re-read fresh state through GetCart.
type ChangeSubscriber func(ctx context.Context, sessionID string)

// AddItemInput holds the parameters for adding a product to the cart.
type AddItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=500"`
	UnitPrice int64  `json:"unit_price"`
}

// CheckoutSummary is the cart state captured at checkout, before the cart is
// cleared.
type CheckoutSummary struct {
	Items       []domain.LineItem `json:"items"`
	ItemCount   int               `json:"item_count"`
	TotalAmount int64             `json:"total_amount"`
}

// CartService is the sole authority over cart contents: the single source of
// truth read by every view. All mutations persist before returning, then
// notify subscribers, then emit analytics best-effort.
type CartService struct {
	repo        repository.CartRepository
	analytics   event.Emitter
	logger      *slog.Logger
	subscribers []ChangeSubscriber
}

// NewCartService creates a new cart service. A nil emitter disables
// analytics without affecting cart behavior.
func NewCartService(repo repository.CartRepository, analytics event.Emitter, logger *slog.Logger) *CartService {
	if analytics == nil {
		analytics = event.NopEmitter{}
	}
	return &CartService{
		repo:      repo,
		analytics: analytics,
		logger:    logger,
	}
}

// OnChange registers a change subscriber. Subscribers are registered during
// wiring, before the service handles requests; registration is not
// synchronized with mutations.
func (s *CartService) OnChange(fn ChangeSubscriber) {
	s.subscribers = append(s.subscribers, fn)
}

// GetCart returns a snapshot of the cart for a session. A session with no
// persisted (or only a malformed) record gets an empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cart.Clone(), nil
}

// AddItem adds a product to the cart. If the product is already present its
// quantity is incremented by one; otherwise a new line item with quantity 1
// is appended. A negative unit price is clamped to 0 so the cart always
// stays renderable.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if input.UnitPrice < 0 {
		input.UnitPrice = 0
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var acted domain.LineItem
	if idx := cart.FindIndex(input.ProductID); idx >= 0 {
		cart.Items[idx].Quantity++
		// Refresh name and price in case the catalog data changed.
		cart.Items[idx].Name = input.Name
		cart.Items[idx].UnitPrice = input.UnitPrice
		acted = cart.Items[idx]
	} else {
		acted = domain.LineItem{
			ProductID: input.ProductID,
			Name:      input.Name,
			UnitPrice: input.UnitPrice,
			Quantity:  1,
		}
		cart.Items = append(cart.Items, acted)
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.notify(ctx, sessionID)
	s.emit(ctx, event.AddToCart, cartPayload(cart, &acted))

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", input.ProductID),
		slog.Int("quantity", acted.Quantity),
	)

	return cart, nil
}

// AdjustQuantity adds delta to the quantity of the given line item. An
// unknown product id is a no-op: nothing is persisted, no subscribers fire,
// and no event is emitted. If the resulting quantity drops to zero or below,
// the item is removed entirely.
func (s *CartService) AdjustQuantity(ctx context.Context, sessionID, productID string, delta int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindIndex(productID)
	if idx < 0 || delta == 0 {
		s.logger.DebugContext(ctx, "quantity adjustment was a no-op",
			slog.String("session_id", sessionID),
			slog.String("product_id", productID),
			slog.Int("delta", delta),
		)
		return cart, nil
	}

	acted := cart.Items[idx]
	newQty := acted.Quantity + delta
	if newQty <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
		acted.Quantity = 0
	} else {
		cart.Items[idx].Quantity = newQty
		acted = cart.Items[idx]
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.notify(ctx, sessionID)

	// The increment control funnels through the add path for reporting;
	// decrements have their own event.
	if delta < 0 {
		s.emit(ctx, event.RemoveOneFromCart, cartPayload(cart, &acted))
	} else {
		s.emit(ctx, event.AddToCart, cartPayload(cart, &acted))
	}

	s.logger.InfoContext(ctx, "cart item quantity adjusted",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("quantity", acted.Quantity),
	)

	return cart, nil
}

// RemoveItem deletes the line item with the given product id. An unknown id
// is a no-op, not an error: a stale view must not be able to crash the store.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindIndex(productID)
	if idx < 0 {
		s.logger.DebugContext(ctx, "remove was a no-op",
			slog.String("session_id", sessionID),
			slog.String("product_id", productID),
		)
		return cart, nil
	}

	acted := cart.Items[idx]
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	s.notify(ctx, sessionID)
	s.emit(ctx, event.RemoveCartItem, cartPayload(cart, &acted))

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
	)

	return cart, nil
}

// ClearCart empties the cart for a session.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	s.notify(ctx, sessionID)

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// Checkout captures the cart state, emits the goToCheckout event with the
// full item list and running totals, and clears the cart. An empty cart
// cannot be checked out.
func (s *CartService) Checkout(ctx context.Context, sessionID string) (*CheckoutSummary, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	summary := &CheckoutSummary{
		Items:       cart.Clone().Items,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.Total(),
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("delete cart: %w", err)
	}
	s.notify(ctx, sessionID)

	items := make([]event.ItemPayload, len(summary.Items))
	for i, item := range summary.Items {
		items[i] = itemPayload(item)
	}
	s.emit(ctx, event.GoToCheckout, event.CartPayload{
		SessionID:   sessionID,
		Items:       items,
		ItemCount:   summary.ItemCount,
		TotalAmount: summary.TotalAmount,
	})

	s.logger.InfoContext(ctx, "checkout started",
		slog.String("session_id", sessionID),
		slog.Int("item_count", summary.ItemCount),
		slog.Int64("total_amount", summary.TotalAmount),
	)

	return summary, nil
}

// load retrieves the cart for a session, starting a fresh empty cart when no
// valid record exists.
func (s *CartService) load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// notify invokes every change subscriber, in registration order.
func (s *CartService) notify(ctx context.Context, sessionID string) {
	for _, fn := range s.subscribers {
		fn(ctx, sessionID)
	}
}

// emit publishes an analytics event best-effort. Emitter failures are logged
// and swallowed; they never affect the outcome of a cart mutation.
func (s *CartService) emit(ctx context.Context, name string, payload event.Payload) {
	if err := s.analytics.Emit(ctx, name, payload); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit analytics event",
			slog.String("event", name),
			slog.String("error", err.Error()),
		)
	}
}

func itemPayload(item domain.LineItem) event.ItemPayload {
	return event.ItemPayload{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  item.Quantity,
	}
}

func cartPayload(cart *domain.Cart, acted *domain.LineItem) event.CartPayload {
	ip := itemPayload(*acted)
	return event.CartPayload{
		SessionID:   cart.SessionID,
		Item:        &ip,
		ItemCount:   cart.ItemCount(),
		TotalAmount: cart.Total(),
	}
}
