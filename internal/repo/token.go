package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/music_catalog/internal/models"
	"github.com/Skotchmaster/music_catalog/pkg/tokens"
)

func (r *GormRepo) BlacklistToken(ctx context.Context, rawToken string, expiresAt time.Time) error {
	row := models.Token{
		TokenHash:   tokens.Fingerprint(rawToken),
		Invalidated: true,
		ExpiresAt:   expiresAt,
	}
	err := r.DB.WithContext(ctx).Create(&row).Error
	if IsDuplicate(err) {
		return nil
	}
	return err
}

func (r *GormRepo) IsBlacklisted(ctx context.Context, rawToken string) (bool, error) {
	return r.exists(r.DB.WithContext(ctx), &models.Token{}, "token_hash", tokens.Fingerprint(rawToken))
}
