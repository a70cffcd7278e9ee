package api

import (
	"context"
	"net/url"
	"strconv"
)

// CommentService wraps the comment endpoints, including the moderation
// actions used by the admin surface.
type CommentService struct {
	client *Client
}

func NewCommentService(client *Client) *CommentService {
	return &CommentService{client: client}
}

// CommentListParams narrows a comment listing. Zero values are omitted.
type CommentListParams struct {
	Article  int
	Status   string
	TopLevel bool
	Page     int
	PageSize int
}

func (p CommentListParams) values() url.Values {
	v := url.Values{}
	if p.Article > 0 {
		v.Set("article", strconv.Itoa(p.Article))
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.TopLevel {
		v.Set("top_level", "true")
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	return v
}

func (s *CommentService) List(ctx context.Context, params CommentListParams) (*Page[Comment], error) {
	var page Page[Comment]
	if err := s.client.Get(ctx, endpointComments, params.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *CommentService) Get(ctx context.Context, id int) (*Comment, error) {
	var comment Comment
	if err := s.client.Get(ctx, commentDetail(id), nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Create(ctx context.Context, req CommentCreate) (*Comment, error) {
	var comment Comment
	if err := s.client.Post(ctx, endpointComments, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, commentDetail(id), nil)
}

func (s *CommentService) Replies(ctx context.Context, id int) ([]Comment, error) {
	var replies []Comment
	if err := s.client.Get(ctx, commentReplies(id), nil, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

func (s *CommentService) Approve(ctx context.Context, id int) (*Comment, error) {
	return s.moderate(ctx, commentApprove(id))
}

func (s *CommentService) Reject(ctx context.Context, id int) (*Comment, error) {
	return s.moderate(ctx, commentReject(id))
}

func (s *CommentService) MarkSpam(ctx context.Context, id int) (*Comment, error) {
	return s.moderate(ctx, commentSpam(id))
}

func (s *CommentService) moderate(ctx context.Context, endpoint string) (*Comment, error) {
	var comment Comment
	if err := s.client.Post(ctx, endpoint, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) Like(ctx context.Context, id int) error {
	return s.client.Post(ctx, commentLike(id), nil, nil)
}

func (s *CommentService) Unlike(ctx context.Context, id int) error {
	return s.client.Post(ctx, commentUnlike(id), nil, nil)
}
