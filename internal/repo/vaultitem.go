package repo

import (
	"context"

	"gorm.io/gorm"

	"LoreKeeper/internal/model"
)

// VaultItemRepository defines vault access for the service layer.
type VaultItemRepository interface {
	// ListByCampaign returns the campaign's vault, oldest first. typeFilter
	// narrows to a single item type when non-empty.
	ListByCampaign(ctx context.Context, campaignID string, typeFilter model.ItemType) ([]model.VaultItem, error)
	GetByID(ctx context.Context, campaignID, id string) (*model.VaultItem, error)
	Create(ctx context.Context, item *model.VaultItem) error
	Save(ctx context.Context, item *model.VaultItem) error
	// UpdateFields applies a partial update to the given columns.
	UpdateFields(ctx context.Context, campaignID, id string, updates map[string]any) error
	Delete(ctx context.Context, campaignID, id string) error
}

type vaultItemRepo struct {
	db *gorm.DB
}

func NewVaultItemRepository(db *gorm.DB) VaultItemRepository {
	return &vaultItemRepo{db: db}
}

func (r *vaultItemRepo) ListByCampaign(ctx context.Context, campaignID string, typeFilter model.ItemType) ([]model.VaultItem, error) {
	q := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	var out []model.VaultItem
	err := q.Order("created_at").Find(&out).Error
	return out, err
}

func (r *vaultItemRepo) GetByID(ctx context.Context, campaignID, id string) (*model.VaultItem, error) {
	var item model.VaultItem
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND id = ?", campaignID, id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *vaultItemRepo) Create(ctx context.Context, item *model.VaultItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *vaultItemRepo) Save(ctx context.Context, item *model.VaultItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *vaultItemRepo) UpdateFields(ctx context.Context, campaignID, id string, updates map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&model.VaultItem{}).
		Where("campaign_id = ? AND id = ?", campaignID, id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *vaultItemRepo) Delete(ctx context.Context, campaignID, id string) error {
	tx := r.db.WithContext(ctx).
		Where("campaign_id = ? AND id = ?", campaignID, id).
		Delete(&model.VaultItem{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
