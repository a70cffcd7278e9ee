package api

import (
	"context"
	"net/url"
	"strconv"
)

// ArticleService wraps the article endpoints. List answers flattened
// IndexRecord rows from the backend's search index; Get answers the
// relational Article record.
type ArticleService struct {
	client *Client
}

func NewArticleService(client *Client) *ArticleService {
	return &ArticleService{client: client}
}

// ListParams narrows an article listing. Zero values are omitted.
type ListParams struct {
	Page     int
	PageSize int
	Category string
	Tag      string
	Locale   string
	Status   string
	Search   string
	Featured bool
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Tag != "" {
		v.Set("tag", p.Tag)
	}
	if p.Locale != "" {
		v.Set("locale", p.Locale)
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Featured {
		v.Set("featured", "true")
	}
	return v
}

func (s *ArticleService) List(ctx context.Context, params ListParams) (*Page[IndexRecord], error) {
	var page Page[IndexRecord]
	if err := s.client.Get(ctx, endpointArticles, params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *ArticleService) Get(ctx context.Context, ref string) (*Article, error) {
	var article Article
	if err := s.client.Get(ctx, articleDetail(ref), nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) Featured(ctx context.Context) ([]Article, error) {
	var articles []Article
	if err := s.client.Get(ctx, endpointArticlesFeatured, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleService) Popular(ctx context.Context, period string, limit int) ([]Article, error) {
	v := url.Values{}
	if period != "" {
		v.Set("period", period)
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	var articles []Article
	if err := s.client.Get(ctx, endpointArticlesPopular, v, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleService) Related(ctx context.Context, ref string, limit int) ([]Article, error) {
	v := url.Values{}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}

	var articles []Article
	if err := s.client.Get(ctx, articleRelated(ref), v, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (s *ArticleService) Create(ctx context.Context, draft ArticleDraft) (*Article, error) {
	var article Article
	if err := s.client.Post(ctx, endpointArticles, draft, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) Update(ctx context.Context, ref string, draft ArticleDraft) (*Article, error) {
	var article Article
	if err := s.client.Put(ctx, articleDetail(ref), draft, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) Delete(ctx context.Context, ref string) error {
	return s.client.Delete(ctx, articleDetail(ref), nil)
}

// LikeResult carries the updated like state after a like/unlike call.
type LikeResult struct {
	LikeCount int  `json:"like_count"`
	Liked     bool `json:"liked"`
}

func (s *ArticleService) Like(ctx context.Context, ref string) (*LikeResult, error) {
	var result LikeResult
	if err := s.client.Post(ctx, articleLike(ref), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ArticleService) Unlike(ctx context.Context, ref string) (*LikeResult, error) {
	var result LikeResult
	if err := s.client.Post(ctx, articleUnlike(ref), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
