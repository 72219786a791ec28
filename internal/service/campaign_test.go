package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"LoreKeeper/internal/model"
)

type mockCampaignRepo struct {
	mock.Mock
}

func (m *mockCampaignRepo) List(ctx context.Context, userID int64) ([]model.Campaign, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]model.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCampaignRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Campaign, error) {
	args := m.Called(ctx, userID, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) Save(ctx context.Context, c *model.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCampaignRepo) Delete(ctx context.Context, userID int64, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockCampaignRepo) SetActiveSession(ctx context.Context, campaignID, sessionID string) error {
	return m.Called(ctx, campaignID, sessionID).Error(0)
}

func strPtr(s string) *string { return &s }

func TestCampaignService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		r := new(mockCampaignRepo)
		r.On("Create", ctx, mock.MatchedBy(func(c *model.Campaign) bool {
			return c.ID != "" && c.UserID == 1 && c.Title == "The Sunken Vale"
		})).Return(nil)

		c, err := NewCampaignService(r).Create(ctx, 1, CampaignInput{Title: strPtr("The Sunken Vale")})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		r.AssertExpectations(t)
	})

	t.Run("title required", func(t *testing.T) {
		r := new(mockCampaignRepo)
		_, err := NewCampaignService(r).Create(ctx, 1, CampaignInput{})
		assert.Error(t, err)
		r.AssertNotCalled(t, "Create")
	})
}

func TestCampaignService_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	existing := &model.Campaign{
		ID:     "c1",
		UserID: 1,
		Title:  "The Sunken Vale",
		Truths: model.StringList{"old truth"},
	}

	r := new(mockCampaignRepo)
	r.On("GetByID", ctx, int64(1), "c1").Return(existing, nil)
	r.On("Save", ctx, mock.MatchedBy(func(c *model.Campaign) bool {
		// only the sent field changes
		return c.ElevatorPitch == "a drowned valley full of debts" &&
			c.Title == "The Sunken Vale" &&
			len(c.Truths) == 1
	})).Return(nil)

	c, err := NewCampaignService(r).Update(ctx, 1, "c1", CampaignInput{
		ElevatorPitch: strPtr("a drowned valley full of debts"),
	})
	require.NoError(t, err)
	assert.Equal(t, "The Sunken Vale", c.Title)
	r.AssertExpectations(t)
}

func TestCampaignService_NotFoundMapping(t *testing.T) {
	ctx := context.Background()

	r := new(mockCampaignRepo)
	r.On("GetByID", ctx, int64(1), "nope").Return(nil, gorm.ErrRecordNotFound)
	r.On("Delete", ctx, int64(1), "nope").Return(gorm.ErrRecordNotFound)

	svc := NewCampaignService(r)
	_, err := svc.Get(ctx, 1, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, "nope"), ErrNotFound)
}
