package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/domain"
)

// TradeService exposes the market statistics endpoint.
type TradeService struct {
	client *api.Client
}

func NewTradeService(client *api.Client) *TradeService {
	return &TradeService{client: client}
}

// Statistics fetches the 24h market snapshot. The backend wraps it as
// {success, data: {statistics: {...}}}; that is the only accepted shape.
func (s *TradeService) Statistics(ctx context.Context) (domain.Statistics, error) {
	res := s.client.Get(ctx, "/api/trade/statistics")
	if !res.Success {
		return domain.Statistics{}, resultErr(res, "Failed to get statistics")
	}

	data, err := openEnvelope("/api/trade/statistics", res.Data, "Failed to get statistics")
	if err != nil {
		return domain.Statistics{}, err
	}

	var payload struct {
		Statistics *domain.Statistics `json:"statistics"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Statistics == nil {
		return domain.Statistics{}, &api.ShapeError{
			Endpoint: "/api/trade/statistics",
			Cause:    errors.New("missing statistics object"),
		}
	}
	return *payload.Statistics, nil
}
