package api

import (
	"context"
	"net/url"
	"strconv"
)

// UserService wraps the user administration endpoints.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (s *UserService) List(ctx context.Context, page, pageSize int, search string) (*Page[User], error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
	if search != "" {
		v.Set("search", search)
	}

	var result Page[User]
	if err := s.client.Get(ctx, endpointUsers, v, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*User, error) {
	var user User
	if err := s.client.Get(ctx, userDetail(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserUpdate is the write shape for user updates; nil fields are left
// untouched.
type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (s *UserService) Update(ctx context.Context, id int, update UserUpdate) (*User, error) {
	var user User
	if err := s.client.Put(ctx, userDetail(id), update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.client.Delete(ctx, userDetail(id), nil)
}

// Profile fetches the public profile used by the about page.
func (s *UserService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, endpointUserProfile, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	return s.client.Post(ctx, endpointChangePassword, body, nil)
}
