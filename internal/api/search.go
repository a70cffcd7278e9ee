package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// SearchService wraps the remote full-text search endpoints.
type SearchService struct {
	client *Client
}

func NewSearchService(client *Client) *SearchService {
	return &SearchService{client: client}
}

// SearchParams is the search request. Tags are comma-joined on the wire.
type SearchParams struct {
	Query    string
	Category string
	Tags     []string
	Locale   string
	Page     int
	PageSize int
}

func (p SearchParams) values() url.Values {
	v := url.Values{}
	v.Set("q", p.Query)
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if len(p.Tags) > 0 {
		v.Set("tags", strings.Join(p.Tags, ","))
	}
	if p.Locale != "" {
		v.Set("locale", p.Locale)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return v
}

func (s *SearchService) Search(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	var resp SearchResponse
	if err := s.client.Get(ctx, endpointSearch, params.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *SearchService) Suggest(ctx context.Context, query string) ([]string, error) {
	v := url.Values{}
	v.Set("q", query)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := s.client.Get(ctx, endpointSearchSuggest, v, &resp); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}
