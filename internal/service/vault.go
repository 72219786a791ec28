package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"LoreKeeper/internal/model"
	"LoreKeeper/internal/repo"
)

// VaultService handles vault item CRUD. Status transitions driven by play
// (link, unlink, conclude) belong to the lifecycle manager; the raw status
// field here exists for corrections and imports.
type VaultService struct {
	repo repo.VaultItemRepository
}

func NewVaultService(r repo.VaultItemRepository) *VaultService {
	return &VaultService{repo: r}
}

func (s *VaultService) List(ctx context.Context, campaignID string, typeFilter model.ItemType) ([]model.VaultItem, error) {
	return s.repo.ListByCampaign(ctx, campaignID, typeFilter)
}

func (s *VaultService) Get(ctx context.Context, campaignID, id string) (*model.VaultItem, error) {
	item, err := s.repo.GetByID(ctx, campaignID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return item, err
}

// VaultItemInput carries creatable/updatable item fields; nil means "not
// sent" so edit-in-place clients can persist a single field on blur.
type VaultItemInput struct {
	Type       model.ItemType    `json:"type"`
	Status     *string           `json:"status"`
	Content    *model.JSONMap    `json:"content"`
	Tags       *model.StringList `json:"tags"`
	UsageCount *int              `json:"usage_count"`
}

func (s *VaultService) Create(ctx context.Context, campaignID string, in VaultItemInput) (*model.VaultItem, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("unknown item type %q: %w", in.Type, ErrBadInput)
	}
	item := &model.VaultItem{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		Type:       in.Type,
		Status:     model.StatusReserve,
		Content:    model.JSONMap{},
		Tags:       model.StringList{},
	}
	if in.Content != nil {
		item.Content = *in.Content
	}
	if in.Tags != nil {
		item.Tags = *in.Tags
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update applies a partial edit. Only the sent columns are written, so two
// quick edits to different fields do not clobber each other.
func (s *VaultService) Update(ctx context.Context, campaignID, id string, in VaultItemInput) (*model.VaultItem, error) {
	updates := map[string]any{}
	if in.Status != nil {
		switch *in.Status {
		case model.StatusReserve, model.StatusActive, model.StatusArchived:
		default:
			return nil, fmt.Errorf("unknown status %q: %w", *in.Status, ErrBadInput)
		}
		updates["status"] = *in.Status
	}
	if in.Content != nil {
		updates["content"] = *in.Content
	}
	if in.Tags != nil {
		updates["tags"] = *in.Tags
	}
	if in.UsageCount != nil {
		updates["usage_count"] = *in.UsageCount
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateFields(ctx, campaignID, id, updates); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	return s.Get(ctx, campaignID, id)
}

// Delete removes the item from the vault permanently.
func (s *VaultService) Delete(ctx context.Context, campaignID, id string) error {
	err := s.repo.Delete(ctx, campaignID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
