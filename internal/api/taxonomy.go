package api

import (
	"context"

	"github.com/nanobanana/nanoblog/internal/validation"
)

// CategoryService wraps the category endpoints.
type CategoryService struct {
	client *Client
}

func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.client.Get(ctx, endpointCategories, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, slug string) (*Category, error) {
	var category Category
	if err := s.client.Get(ctx, categoryDetail(slug), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// TagService wraps the tag endpoints.
type TagService struct {
	client *Client
}

func NewTagService(client *Client) *TagService {
	return &TagService{client: client}
}

func (s *TagService) List(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := s.client.Get(ctx, endpointTags, nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, slug string) (*Tag, error) {
	var tag Tag
	if err := s.client.Get(ctx, tagDetail(slug), nil, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create registers a new tag, deriving its slug from the name.
func (s *TagService) Create(ctx context.Context, name string) (*Tag, error) {
	body := map[string]string{"name": name, "slug": validation.Slugify(name)}

	var tag Tag
	if err := s.client.Post(ctx, endpointTags, body, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}
