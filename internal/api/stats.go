package api

import (
	"context"
	"net/url"
	"strconv"
)

// StatsService wraps the read-only statistics endpoints.
type StatsService struct {
	client *Client
}

func NewStatsService(client *Client) *StatsService {
	return &StatsService{client: client}
}

func (s *StatsService) Overview(ctx context.Context) (*OverviewStats, error) {
	var stats OverviewStats
	if err := s.client.Get(ctx, endpointStatsOverview, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *StatsService) PopularArticles(ctx context.Context, period string, limit int) ([]PopularArticle, error) {
	v := url.Values{}
	if period != "" {
		v.Set("period", period)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	var articles []PopularArticle
	if err := s.client.Get(ctx, endpointStatsPopular, v, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}
