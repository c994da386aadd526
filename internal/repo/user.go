package repo

import (
	"context"

	"github.com/Skotchmaster/music_catalog/internal/models"
)

type UserFilter struct {
	Role string
}

func (r *GormRepo) CountUsers(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.User{}, "email", email)
}

func (r *GormRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers never returns Admin accounts.
func (r *GormRepo) ListUsers(ctx context.Context, f UserFilter, p Page) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{}).Where("role <> ?", models.RoleAdmin)
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	users := make([]models.User, 0, p.Limit)
	if err := q.Order("created_at ASC, user_id ASC").Offset(p.Offset).Limit(p.Limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepo) UpdatePassword(ctx context.Context, userID, sealed string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ?", userID).
		Update("password", sealed).Error
}

func (r *GormRepo) DeleteUser(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.User{}).Error
}
