package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/kkkkikiki/lukitas/internal/backend"
	"github.com/kkkkikiki/lukitas/internal/model"
)

// Store serves backend.Client straight from the backend's Postgres database.
type Store struct {
	db           *sqlx.DB
	userRepo     *UserRepository
	accountRepo  *AccountRepository
	campaignRepo *CampaignRepository
}

var _ backend.Client = (*Store)(nil)

// NewStore creates a Store over db
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:           db,
		userRepo:     NewUserRepository(),
		accountRepo:  NewAccountRepository(),
		campaignRepo: NewCampaignRepository(),
	}
}

// ListUsers returns every user, newest first
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.db)
	if err != nil {
		return nil, backend.Wrap(backend.OpListUsers, model.TableUsers, err)
	}
	return users, nil
}

// ListAccounts returns every account, newest first
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, s.db)
	if err != nil {
		return nil, backend.Wrap(backend.OpListAccounts, model.TableAccounts, err)
	}
	return accounts, nil
}

// ListCampaigns returns every campaign, newest first
func (s *Store) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	campaigns, err := s.campaignRepo.ListCampaigns(ctx, s.db)
	if err != nil {
		return nil, backend.Wrap(backend.OpListCampaigns, model.TableCampaigns, err)
	}
	return campaigns, nil
}

// SetAccountBalance overwrites an account balance
func (s *Store) SetAccountBalance(ctx context.Context, accountID int64, balance float64) error {
	err := s.accountRepo.SetBalance(ctx, s.db, accountID, balance)
	return backend.Wrap(backend.OpSetAccountBalance, model.TableAccounts, err)
}

// SetCampaignActive overwrites a campaign's active flag
func (s *Store) SetCampaignActive(ctx context.Context, campaignID int64, active bool) error {
	err := s.campaignRepo.SetActive(ctx, s.db, campaignID, active)
	return backend.Wrap(backend.OpSetCampaignActive, model.TableCampaigns, err)
}

// CreateCampaign inserts a campaign and returns the stored row
func (s *Store) CreateCampaign(ctx context.Context, campaign model.NewCampaign) (*model.Campaign, error) {
	created, err := s.campaignRepo.CreateCampaign(ctx, s.db, campaign)
	if err != nil {
		return nil, backend.Wrap(backend.OpCreateCampaign, model.TableCampaigns, err)
	}
	return created, nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return backend.Wrap(backend.OpPing, "", s.db.PingContext(ctx))
}
