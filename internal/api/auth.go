package api

import "context"

// AuthService wraps the authentication endpoints. Login and Register
// persist the returned credential pair through the client's token store.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "password": password}

	var auth AuthResponse
	if err := s.client.Post(ctx, endpointLogin, body, &auth); err != nil {
		return nil, err
	}
	if auth.Access != "" && auth.Refresh != "" {
		if err := s.client.setTokens(auth.Access, auth.Refresh); err != nil {
			return nil, err
		}
	}
	return &auth, nil
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var auth AuthResponse
	if err := s.client.Post(ctx, endpointRegister, req, &auth); err != nil {
		return nil, err
	}
	if auth.Access != "" && auth.Refresh != "" {
		if err := s.client.setTokens(auth.Access, auth.Refresh); err != nil {
			return nil, err
		}
	}
	return &auth, nil
}

// Logout notifies the backend and always clears the local credential
// pair, even when the server call fails.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.client.Post(ctx, endpointLogout, nil, nil)
	if clearErr := s.client.ClearTokens(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

func (s *AuthService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.Get(ctx, endpointMe, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
