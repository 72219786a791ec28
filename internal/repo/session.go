package repo

import (
	"context"

	"gorm.io/gorm"

	"LoreKeeper/internal/model"
)

// SessionRepository defines session access for the service layer.
type SessionRepository interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]model.Session, error)
	GetByID(ctx context.Context, campaignID, id string) (*model.Session, error)
	Create(ctx context.Context, s *model.Session) error
	Save(ctx context.Context, s *model.Session) error
	// NextNumber returns max(number)+1 within the campaign, starting at 1.
	NextNumber(ctx context.Context, campaignID string) (int, error)
	Delete(ctx context.Context, campaignID, id string) error
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) ListByCampaign(ctx context.Context, campaignID string) ([]model.Session, error) {
	var out []model.Session
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("number").
		Find(&out).Error
	return out, err
}

func (r *sessionRepo) GetByID(ctx context.Context, campaignID, id string) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND id = ?", campaignID, id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) Save(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sessionRepo) NextNumber(ctx context.Context, campaignID string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *sessionRepo) Delete(ctx context.Context, campaignID, id string) error {
	tx := r.db.WithContext(ctx).
		Where("campaign_id = ? AND id = ?", campaignID, id).
		Delete(&model.Session{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
