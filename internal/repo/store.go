package repo

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles the repositories behind one handle and lets a workflow run
// several writes as a single transaction. Inside InTransaction the callback
// receives a Store whose repositories are bound to the transaction; an error
// from the callback rolls everything back.
type Store interface {
	Users() UserRepository
	Campaigns() CampaignRepository
	Items() VaultItemRepository
	Sessions() SessionRepository
	InTransaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm handle in a Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepository          { return NewUserRepository(s.db) }
func (s *gormStore) Campaigns() CampaignRepository  { return NewCampaignRepository(s.db) }
func (s *gormStore) Items() VaultItemRepository     { return NewVaultItemRepository(s.db) }
func (s *gormStore) Sessions() SessionRepository    { return NewSessionRepository(s.db) }

func (s *gormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
