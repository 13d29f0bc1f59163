package services

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/bitdesk/bitdesk/internal/api"
	"github.com/bitdesk/bitdesk/internal/domain"
	"github.com/bitdesk/bitdesk/pkg/logger"
)

// LoginResult is the token grant returned by the backend. Unknown
// usernames are auto-registered server-side with a fixed starting
// balance, so login never fails for a new name.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// AuthService exchanges usernames for tokens and fetches profiles.
type AuthService struct {
	client *api.Client
	log    *logrus.Entry
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{
		client: client,
		log:    logger.WithField("module", "services.auth"),
	}
}

// Login exchanges a username for a token and user id.
func (s *AuthService) Login(ctx context.Context, username string) (LoginResult, error) {
	res := s.client.Post(ctx, "/api/auth/login", map[string]string{"username": username})
	if !res.Success {
		return LoginResult{}, resultErr(res, "Failed to login")
	}

	var out LoginResult
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return LoginResult{}, &api.ShapeError{Endpoint: "/api/auth/login", Cause: err}
	}
	if out.Token == "" || out.UserID == "" {
		return LoginResult{}, &api.ShapeError{
			Endpoint: "/api/auth/login",
			Cause:    errors.New("missing token or userId"),
		}
	}
	return out, nil
}

// UserProfile fetches the profile for a user id.
func (s *AuthService) UserProfile(ctx context.Context, userID string) (domain.User, error) {
	res := s.client.Get(ctx, "/api/user/profile/"+userID)
	if !res.Success {
		return domain.User{}, resultErr(res, "Failed to fetch user profile")
	}

	var user domain.User
	if err := json.Unmarshal(res.Data, &user); err != nil {
		return domain.User{}, &api.ShapeError{Endpoint: "/api/user/profile", Cause: err}
	}
	if user.ID == "" {
		return domain.User{}, &api.ShapeError{
			Endpoint: "/api/user/profile",
			Cause:    errors.New("missing user id"),
		}
	}
	return user, nil
}
