package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/domain"
)

// MatchService exposes the executed-trade feeds: the user's own match
// history and the platform-wide feed.
type MatchService struct {
	client *api.Client
}

func NewMatchService(client *api.Client) *MatchService {
	return &MatchService{client: client}
}

// History lists the current user's matches.
func (s *MatchService) History(ctx context.Context) ([]domain.Match, error) {
	res := s.client.Get(ctx, "/api/match/history")
	if !res.Success {
		return nil, resultErr(res, "Failed to retrieve match history")
	}

	data, err := openEnvelope("/api/match/history", res.Data, "Failed to retrieve match history")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Matches *[]domain.Match `json:"matches"`
		Total   int             `json:"total"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Matches == nil {
		return nil, &api.ShapeError{Endpoint: "/api/match/history", Cause: errors.New("missing matches list")}
	}
	return *payload.Matches, nil
}

// GlobalMatches lists recent matches across the whole platform.
func (s *MatchService) GlobalMatches(ctx context.Context) ([]domain.GlobalMatch, error) {
	res := s.client.Get(ctx, "/api/globalMatch")
	if !res.Success {
		return nil, resultErr(res, "Failed to get global matches")
	}

	data, err := openEnvelope("/api/globalMatch", res.Data, "Failed to get global matches")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Matches *[]domain.GlobalMatch `json:"matches"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Matches == nil {
		return nil, &api.ShapeError{Endpoint: "/api/globalMatch", Cause: errors.New("missing matches list")}
	}
	return *payload.Matches, nil
}
