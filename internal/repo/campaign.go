package repo

import (
	"context"

	"gorm.io/gorm"

	"LoreKeeper/internal/model"
)

// CampaignRepository defines campaign access for the service layer.
// All reads are scoped to the owning user.
type CampaignRepository interface {
	List(ctx context.Context, userID int64) ([]model.Campaign, error)
	GetByID(ctx context.Context, userID int64, id string) (*model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
	Save(ctx context.Context, c *model.Campaign) error
	Delete(ctx context.Context, userID int64, id string) error

	// SetActiveSession moves the campaign's live-session pointer. Scoped by
	// campaign id only: it is called from workflows that already hold the
	// campaign.
	SetActiveSession(ctx context.Context, campaignID, sessionID string) error
}

type campaignRepo struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepo{db: db}
}

func (r *campaignRepo) List(ctx context.Context, userID int64) ([]model.Campaign, error) {
	var out []model.Campaign
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&out).Error
	return out, err
}

func (r *campaignRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Campaign, error) {
	var c model.Campaign
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *campaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *campaignRepo) Save(ctx context.Context, c *model.Campaign) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *campaignRepo) Delete(ctx context.Context, userID int64, id string) error {
	tx := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&model.Campaign{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *campaignRepo) SetActiveSession(ctx context.Context, campaignID, sessionID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Campaign{}).
		Where("id = ?", campaignID).
		Update("active_session", sessionID).Error
}
