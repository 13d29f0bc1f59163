package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/pkg/logger"
)

// OrderService covers the order endpoints: active orders, creation,
// cancellation and the aggregated book. No retries, no caching; the
// next poll cycle is the only retry there is.
type OrderService struct {
	client *api.Client
	log    *logrus.Entry
}

func NewOrderService(client *api.Client) *OrderService {
	return &OrderService{
		client: client,
		log:    logger.WithField("module", "services.order"),
	}
}

// ActiveOrders lists the current user's open orders.
func (s *OrderService) ActiveOrders(ctx context.Context) ([]domain.Order, error) {
	res := s.client.Get(ctx, "/api/order/active")
	if !res.Success {
		return nil, resultErr(res, "Failed to get active orders")
	}

	data, err := openEnvelope("/api/order/active", res.Data, "Failed to get active orders")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Orders *[]domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Orders == nil {
		return nil, &api.ShapeError{Endpoint: "/api/order/active", Cause: errors.New("missing orders list")}
	}
	return *payload.Orders, nil
}

// CreateOrder submits a buy or sell order.
func (s *OrderService) CreateOrder(ctx context.Context, side domain.Side, amount, price decimal.Decimal) (domain.Order, error) {
	body := map[string]interface{}{
		"type":   side,
		"amount": amount,
		"price":  price,
	}
	res := s.client.Post(ctx, "/api/order", body)
	if !res.Success {
		return domain.Order{}, resultErr(res, "Failed to create order")
	}

	var order domain.Order
	if err := json.Unmarshal(res.Data, &order); err != nil {
		return domain.Order{}, &api.ShapeError{Endpoint: "/api/order", Cause: err}
	}
	return order, nil
}

// CancelOrder cancels an order by id. Callers must only drop the order
// from their local view after this returns nil.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) error {
	res := s.client.Delete(ctx, "/api/order/"+orderID)
	if !res.Success {
		return resultErr(res, "Failed to cancel order")
	}
	return nil
}

// Book fetches the aggregated order book. Both sides must be present in
// the payload; a body without bids and asks is a shape error, not an
// empty book.
func (s *OrderService) Book(ctx context.Context) (domain.OrderBook, error) {
	res := s.client.Get(ctx, "/api/order/book")
	if !res.Success {
		return domain.OrderBook{}, resultErr(res, "Failed to get order book")
	}

	var payload struct {
		Bids *[]domain.BookLevel `json:"bids"`
		Asks *[]domain.BookLevel `json:"asks"`
	}
	if err := json.Unmarshal(res.Data, &payload); err != nil {
		return domain.OrderBook{}, &api.ShapeError{Endpoint: "/api/order/book", Cause: err}
	}
	if payload.Bids == nil || payload.Asks == nil {
		return domain.OrderBook{}, &api.ShapeError{
			Endpoint: "/api/order/book",
			Cause:    errors.New("missing bids or asks"),
		}
	}
	return domain.OrderBook{Bids: *payload.Bids, Asks: *payload.Asks}, nil
}
