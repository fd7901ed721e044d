package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kkkkikiki/lukitas/internal/backend"
	"github.com/kkkkikiki/lukitas/internal/campaignform"
	"github.com/kkkkikiki/lukitas/internal/metrics"
	"github.com/kkkkikiki/lukitas/internal/model"
)

// Alerts shown to the admin after an action.
const (
	AlertLoadFailed       = "Error al cargar los datos. Por favor, recarga la página."
	AlertBalanceUpdated   = "Saldo actualizado correctamente"
	AlertBalanceFailed    = "Error al actualizar el saldo"
	AlertCampaignToggled  = "Estado de campaña actualizado"
	AlertToggleFailed     = "Error al actualizar la campaña"
	AlertCampaignCreated  = "Campaña creada exitosamente"
	AlertCreateFailed     = "Error al crear la campaña. Por favor, inténtalo de nuevo."
	AlertInvalidBalance   = "El saldo ingresado no es un número válido"
	AlertSubmitInProgress = "La campaña se está creando, espera un momento"
)

var (
	// ErrBusy is returned while a campaign submission is in flight.
	ErrBusy = errors.New("campaign submission already in progress")
	// ErrNotFound is returned for ids missing from the loaded snapshot.
	ErrNotFound = errors.New("not found in loaded data")
	// ErrInvalidInput is returned for a balance that does not parse.
	ErrInvalidInput = errors.New("invalid input")
	// ErrValidation is returned when the campaign form has field errors.
	ErrValidation = errors.New("campaign form has errors")
)

// DashboardService holds the in-memory copy of users, accounts and
// campaigns and runs the admin actions against the backend.
type DashboardService struct {
	client  backend.Client
	ownerID int64
	logger  *zap.Logger

	mu        sync.Mutex
	state     State
	users     []model.User
	accounts  []model.Account
	campaigns []model.Campaign
	formOpen  bool
	alert     string

	submitting atomic.Bool
}

// NewDashboardService creates a dashboard in the Loading state. Campaigns it
// creates are owned by ownerID.
func NewDashboardService(client backend.Client, ownerID int64, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		client:  client,
		ownerID: ownerID,
		logger:  logger,
		state:   StateLoading,
	}
}

// Load fetches the three collections concurrently and always ends in
// StateReady. A failed source leaves its collection empty; the others keep
// what they fetched. Any failure queues AlertLoadFailed and is returned.
func (s *DashboardService) Load(ctx context.Context) error {
	var (
		users                              []model.User
		accounts                           []model.Account
		campaigns                          []model.Campaign
		usersErr, accountsErr, campaignErr error
	)

	// plain Group: one failing source must not cancel the others
	var g errgroup.Group
	g.Go(func() error {
		users, usersErr = s.client.ListUsers(ctx)
		return usersErr
	})
	g.Go(func() error {
		accounts, accountsErr = s.client.ListAccounts(ctx)
		return accountsErr
	})
	g.Go(func() error {
		campaigns, campaignErr = s.client.ListCampaigns(ctx)
		return campaignErr
	})
	_ = g.Wait()

	err := errors.Join(usersErr, accountsErr, campaignErr)

	s.mu.Lock()
	s.users = orEmpty(users, usersErr)
	s.accounts = orEmpty(accounts, accountsErr)
	s.campaigns = orEmpty(campaigns, campaignErr)
	s.state = StateReady
	if err != nil {
		s.alert = AlertLoadFailed
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("error loading dashboard data", zap.Error(err))
		metrics.RecordAction("load", "failure")
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	s.logger.Debug("dashboard loaded",
		zap.Int("users", len(users)),
		zap.Int("accounts", len(accounts)),
		zap.Int("campaigns", len(campaigns)),
	)
	metrics.RecordAction("load", "success")
	return nil
}

func orEmpty[T any](rows []T, err error) []T {
	if err != nil || rows == nil {
		return []T{}
	}
	return rows
}

// Snapshot returns a copy of the current state.
func (s *DashboardService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		State:     s.state,
		Users:     slices.Clone(s.users),
		Accounts:  slices.Clone(s.accounts),
		Campaigns: slices.Clone(s.campaigns),
		FormOpen:  s.formOpen,
		Stats:     computeStats(s.users, s.accounts, s.campaigns),
	}
}

// State returns the current lifecycle state.
func (s *DashboardService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// TakeAlert returns the queued alert, if any, and clears it.
func (s *DashboardService) TakeAlert() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert := s.alert
	s.alert = ""
	return alert
}

// UpdateBalance parses input as the new balance of accountID, writes it to
// the backend and then patches only the local copy of that account.
func (s *DashboardService) UpdateBalance(ctx context.Context, accountID int64, input string) (string, error) {
	if !s.hasAccount(accountID) {
		return "", fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	balance, err := parseBalance(input)
	if err != nil {
		return AlertInvalidBalance, err
	}

	if err := s.client.SetAccountBalance(ctx, accountID, balance); err != nil {
		s.logger.Error("error updating balance",
			zap.Int64("account_id", accountID),
			zap.Float64("balance", balance),
			zap.Error(err),
		)
		metrics.RecordAction("update_balance", "failure")
		return AlertBalanceFailed, err
	}

	s.mu.Lock()
	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			s.accounts[i].Balance = balance
		}
	}
	s.mu.Unlock()

	s.logger.Info("balance updated", zap.Int64("account_id", accountID), zap.Float64("balance", balance))
	metrics.RecordAction("update_balance", "success")
	return AlertBalanceUpdated, nil
}

func (s *DashboardService) hasAccount(accountID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.accounts, func(a model.Account) bool { return a.ID == accountID })
}

func parseBalance(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("empty balance: %w", ErrInvalidInput)
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("balance %q: %w", input, ErrInvalidInput)
	}
	return v, nil
}

// ToggleCampaign flips the active flag of campaignID, based on the locally
// loaded value, and mirrors the result locally without a re-fetch.
func (s *DashboardService) ToggleCampaign(ctx context.Context, campaignID int64) (string, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.campaigns, func(c model.Campaign) bool { return c.ID == campaignID })
	var next bool
	if idx >= 0 {
		next = !s.campaigns[idx].Active
	}
	s.mu.Unlock()
	if idx < 0 {
		return "", fmt.Errorf("campaign %d: %w", campaignID, ErrNotFound)
	}

	if err := s.client.SetCampaignActive(ctx, campaignID, next); err != nil {
		s.logger.Error("error updating campaign",
			zap.Int64("campaign_id", campaignID),
			zap.Bool("active", next),
			zap.Error(err),
		)
		metrics.RecordAction("toggle_campaign", "failure")
		return AlertToggleFailed, err
	}

	s.mu.Lock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == campaignID {
			s.campaigns[i].Active = next
		}
	}
	s.mu.Unlock()

	s.logger.Info("campaign state updated", zap.Int64("campaign_id", campaignID), zap.Bool("active", next))
	metrics.RecordAction("toggle_campaign", "success")
	return AlertCampaignToggled, nil
}

// OpenCampaignForm shows the new-campaign modal.
func (s *DashboardService) OpenCampaignForm() {
	s.mu.Lock()
	s.formOpen = true
	s.mu.Unlock()
}

// CloseCampaignForm hides the modal. It refuses while a submission runs.
func (s *DashboardService) CloseCampaignForm() error {
	if s.submitting.Load() {
		return ErrBusy
	}
	s.mu.Lock()
	s.formOpen = false
	s.mu.Unlock()
	return nil
}

// Submitting reports whether a campaign submission is in flight.
func (s *DashboardService) Submitting() bool {
	return s.submitting.Load()
}

// CreateCampaign validates form, inserts the campaign and reloads every
// collection before closing the modal. Field errors come back with
// ErrValidation and no backend call is made.
func (s *DashboardService) CreateCampaign(ctx context.Context, form campaignform.Form) (campaignform.Errors, string, error) {
	errs, ok := form.Validate()
	if !ok {
		metrics.RecordAction("create_campaign", "invalid")
		return errs, "", ErrValidation
	}

	if !s.submitting.CompareAndSwap(false, true) {
		return campaignform.Errors{}, AlertSubmitInProgress, ErrBusy
	}
	defer s.submitting.Store(false)

	payload := form.Payload(s.ownerID)
	created, err := s.client.CreateCampaign(ctx, payload)
	if err != nil {
		s.logger.Error("error creating campaign", zap.String("name", payload.Name), zap.Error(err))
		metrics.RecordAction("create_campaign", "failure")
		return campaignform.Errors{}, AlertCreateFailed, err
	}

	// load failures queue their own alert
	_ = s.Load(ctx)

	s.mu.Lock()
	s.formOpen = false
	s.mu.Unlock()

	s.logger.Info("campaign created",
		zap.Int64("campaign_id", created.ID),
		zap.Int64("owner_id", payload.UserID),
	)
	metrics.RecordAction("create_campaign", "success")
	return campaignform.Errors{}, AlertCampaignCreated, nil
}

// Ping checks that the backend answers.
func (s *DashboardService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
