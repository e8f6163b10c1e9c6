package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"pitak-order-api/internal/dto"
	"pitak-order-api/internal/model"
)

// OrderStore is the record-store capability set the manager needs.
// FindByOrderID returns (nil, nil) when no record matches.
type OrderStore interface {
	FindByOrderID(ctx context.Context, orderID string) (*model.Order, error)
	Create(ctx context.Context, o *model.Order) (*model.Order, error)
	UpdateStatus(ctx context.Context, recordID string, status model.Status) error
	UpdateSlipURL(ctx context.Context, recordID, slipURL string) error
	List(ctx context.Context) ([]*model.Order, error)
}

// EventPublisher emits post-commit order events. Publish failures
// never affect the outcome of the mutation that produced them.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o *model.Order) error
	StatusChanged(ctx context.Context, o *model.Order, newStatus model.Status) error
	SlipReceived(ctx context.Context, o *model.Order) error
}

// Business errors exported for the controller to map onto HTTP codes.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrDuplicateOrder = errors.New("order id already exists")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrFileRequired   = errors.New("slip file is required")
)

// OrderService is the order lifecycle manager: it owns creation
// idempotency, status changes and the notification side effects.
type OrderService struct {
	store  OrderStore
	events EventPublisher

	mu       sync.Mutex
	inflight map[string]*createLock
}

type createLock struct {
	mu   sync.Mutex
	refs int
}

func NewOrderService(store OrderStore, events EventPublisher) *OrderService {
	return &OrderService{
		store:    store,
		events:   events,
		inflight: make(map[string]*createLock),
	}
}

// lockCreate serializes creations for one order id through a single
// writer, so two concurrent creates cannot both pass the existence
// check. The store has no conditional create, this in-process lock is
// the only guard (a second instance can still race, see DESIGN.md).
func (s *OrderService) lockCreate(orderID string) func() {
	s.mu.Lock()
	l, ok := s.inflight[orderID]
	if !ok {
		l = &createLock{}
		s.inflight[orderID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.inflight, orderID)
		}
		s.mu.Unlock()
	}
}

// Create validates the request, rejects duplicate order ids and
// persists the order with status pending. Total is computed here,
// once, and never recomputed afterwards.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*model.Order, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	unlock := s.lockCreate(req.OrderID)
	defer unlock()

	existing, err := s.store.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateOrder
	}

	order := &model.Order{
		OrderID:      req.OrderID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		AmuletName:   req.AmuletName,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Total:        float64(req.Quantity) * req.Price,
		Status:       model.StatusPending,
		LineUserID:   req.LineUserID,
	}

	created, err := s.store.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.events.OrderCreated(ctx, created); err != nil {
		zap.L().Warn("order created event not published",
			zap.String("orderId", created.OrderID), zap.Error(err))
	}

	zap.L().Info("order created",
		zap.String("orderId", created.OrderID),
		zap.Float64("total", created.Total))
	return created, nil
}

func (s *OrderService) GetByOrderID(ctx context.Context, orderID string) (*model.Order, error) {
	o, err := s.store.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// AttachSlip records the uploaded slip URL on the order. Re-attaching
// overwrites the previous URL; the status is left alone, pairing a
// slip with a status change is a manual admin step.
func (s *OrderService) AttachSlip(ctx context.Context, orderID, slipURL string) (*model.Order, error) {
	if slipURL == "" {
		return nil, ErrFileRequired
	}

	o, err := s.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateSlipURL(ctx, o.RecordID, slipURL); err != nil {
		return nil, err
	}
	o.SlipURL = slipURL

	if err := s.events.SlipReceived(ctx, o); err != nil {
		zap.L().Warn("slip received event not published",
			zap.String("orderId", o.OrderID), zap.Error(err))
	}

	zap.L().Info("slip attached", zap.String("orderId", o.OrderID))
	return o, nil
}

// ListAll returns every order, newest first (store-side sort).
func (s *OrderService) ListAll(ctx context.Context) ([]*model.Order, error) {
	return s.store.List(ctx)
}

// UpdateStatus applies any valid status unconditionally. The graph is
// fully connected: backwards moves and overwriting cancelled or
// completed orders are allowed.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, newStatus string) (*model.Order, error) {
	status := model.Status(newStatus)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	o, err := s.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateStatus(ctx, o.RecordID, status); err != nil {
		return nil, err
	}
	o.Status = status

	if err := s.events.StatusChanged(ctx, o, status); err != nil {
		zap.L().Warn("status changed event not published",
			zap.String("orderId", o.OrderID), zap.Error(err))
	}

	zap.L().Info("status updated",
		zap.String("orderId", o.OrderID),
		zap.String("status", string(status)))
	return o, nil
}
