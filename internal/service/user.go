package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/music_catalog/internal/events"
	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/internal/repo"
	"github.com/Skotchmaster/music_catalog/internal/transport"
	"github.com/Skotchmaster/music_catalog/pkg/hash"
)

type UserService struct {
	Repo   *repo.GormRepo
	Sealer hash.Sealer
	Events events.Publisher
}

func (s *UserService) List(ctx context.Context, role string, p repo.Page) ([]transport.UserView, error) {
	users, err := s.Repo.ListUsers(ctx, repo.UserFilter{Role: role}, p)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]transport.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, transport.UserView{
			UserID:    u.UserID,
			Email:     u.Email,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}

func (s *UserService) AddUser(ctx context.Context, req transport.AddUserRequest) error {
	email := normalizeEmail(req.Email)
	if name, missing := firstMissing(
		field{"Email", email != ""},
		field{"Password", req.Password != ""},
		field{"Role", req.Role != ""},
	); missing {
		return invalid("Bad Request, Reason: Missing " + name)
	}

	role := models.Role(req.Role)
	if role != models.RoleEditor && role != models.RoleViewer {
		return invalid("Bad Request, Reason: Role should be either Editor or Viewer")
	}

	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return conflict("Email already exists.")
	}

	sealed, err := s.Sealer.Seal(req.Password)
	if err != nil {
		return fmt.Errorf("seal password: %w", err)
	}

	user := models.User{Email: email, Password: sealed, Role: role}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if repo.IsDuplicate(err) {
			return conflict("Email already exists.")
		}
		return fmt.Errorf("create user: %w", err)
	}

	publishUser(ctx, s.Events, "user_created", &user)
	return nil
}

// Delete removes a non-Admin user and returns it.
func (s *UserService) Delete(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, invalid("Bad Request: Missing user_id")
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found.")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Role == models.RoleAdmin {
		return nil, invalid("Admin cannot be deleted.")
	}

	if err := s.Repo.DeleteUser(ctx, user.UserID); err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	publishUser(ctx, s.Events, "user_deleted", user)
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID string, req transport.UpdatePasswordRequest) error {
	if name, missing := firstMissing(
		field{"old_password", req.OldPassword != ""},
		field{"new_password", req.NewPassword != ""},
	); missing {
		return invalid("Bad Request, Reason: Missing " + name)
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("User not found.")
		}
		return fmt.Errorf("get user: %w", err)
	}

	ok, err := s.Sealer.Matches(user.Password, req.OldPassword)
	if err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return invalid("Incorrect old password.")
	}
	if req.NewPassword == req.OldPassword {
		return invalid("New password cannot be the same as the old password.")
	}

	sealed, err := s.Sealer.Seal(req.NewPassword)
	if err != nil {
		return fmt.Errorf("seal password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, user.UserID, sealed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
