package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"LoreKeeper/internal/model"
	"LoreKeeper/internal/repo"
)

var (
	// ErrNotFound means the requested record does not exist (or belongs to
	// someone else, which looks the same from outside).
	ErrNotFound = errors.New("not found")
	// ErrBadInput marks validation failures the client should fix and retry.
	ErrBadInput = errors.New("bad input")
)

// CampaignService handles campaign CRUD for a facilitator's account.
type CampaignService struct {
	repo repo.CampaignRepository
}

func NewCampaignService(r repo.CampaignRepository) *CampaignService {
	return &CampaignService{repo: r}
}

func (s *CampaignService) List(ctx context.Context, userID int64) ([]model.Campaign, error) {
	return s.repo.List(ctx, userID)
}

func (s *CampaignService) Get(ctx context.Context, userID int64, id string) (*model.Campaign, error) {
	c, err := s.repo.GetByID(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

// CampaignInput carries the creatable/updatable campaign fields. Pointers
// distinguish "not sent" from zero values on update.
type CampaignInput struct {
	Title         *string           `json:"title"`
	ElevatorPitch *string           `json:"elevator_pitch"`
	Framework     *string           `json:"framework"`
	Truths        *model.StringList `json:"truths"`
	Fronts        *model.FrontList  `json:"fronts"`
	SafetyTools   *string           `json:"safety_tools"`
	ActiveSession *string           `json:"active_session"`
}

func (s *CampaignService) Create(ctx context.Context, userID int64, in CampaignInput) (*model.Campaign, error) {
	c := &model.Campaign{
		ID:     uuid.NewString(),
		UserID: userID,
		Truths: model.StringList{},
		Fronts: model.FrontList{},
	}
	applyCampaignInput(c, in)
	if c.Title == "" {
		return nil, errors.New("title is required")
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Update(ctx context.Context, userID int64, id string, in CampaignInput) (*model.Campaign, error) {
	c, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyCampaignInput(c, in)
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) Delete(ctx context.Context, userID int64, id string) error {
	err := s.repo.Delete(ctx, userID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func applyCampaignInput(c *model.Campaign, in CampaignInput) {
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.ElevatorPitch != nil {
		c.ElevatorPitch = *in.ElevatorPitch
	}
	if in.Framework != nil {
		c.Framework = *in.Framework
	}
	if in.Truths != nil {
		c.Truths = *in.Truths
	}
	if in.Fronts != nil {
		c.Fronts = *in.Fronts
	}
	if in.SafetyTools != nil {
		c.SafetyTools = *in.SafetyTools
	}
	if in.ActiveSession != nil {
		c.ActiveSession = *in.ActiveSession
	}
}
