package repository

import (
	"context"
	"errors"
	"time"

	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/session/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ domain.TokenRepository = (*PostgresTokenRepo)(nil)

// ---------- SESSION TOKENS ----------
type SessionToken struct {
	Key       string `gorm:"primaryKey;size:64"`
	Token     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ---------- REPO ----------

type PostgresTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresTokenRepo(db *gorm.DB, log *logger.Logger) *PostgresTokenRepo {
	if err := db.AutoMigrate(&SessionToken{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	return &PostgresTokenRepo{db: db, log: log}
}

func (r *PostgresTokenRepo) GetToken(ctx context.Context) (string, error) {
	var t SessionToken
	if err := r.db.WithContext(ctx).First(&t, "key = ?", domain.TokenKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return t.Token, nil
}

func (r *PostgresTokenRepo) SaveToken(ctx context.Context, token string) error {
	if token == "" {
		return r.db.WithContext(ctx).Delete(&SessionToken{}, "key = ?", domain.TokenKey).Error
	}
	model := SessionToken{Key: domain.TokenKey, Token: token}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "updated_at"}),
	}).Create(&model).Error
}
