package service

import (
	"github.com/kkkkikiki/lukitas/internal/model"
)

// State is the dashboard lifecycle state.
type State int

const (
	// StateLoading holds until the first load completes.
	StateLoading State = iota
	// StateReady means the collections reflect the last load.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Stats are the summary cards shown above the tables.
type Stats struct {
	TotalUsers      int
	TotalAccounts   int
	ActiveCampaigns int
}

// Snapshot is a copy of the dashboard state, safe to read without locks.
type Snapshot struct {
	State     State
	Users     []model.User
	Accounts  []model.Account
	Campaigns []model.Campaign
	FormOpen  bool
	Stats     Stats
}

// AccountFor returns the first account owned by userID.
func (s Snapshot) AccountFor(userID int64) (model.Account, bool) {
	for _, a := range s.Accounts {
		if a.UserID == userID {
			return a, true
		}
	}
	return model.Account{}, false
}

func computeStats(users []model.User, accounts []model.Account, campaigns []model.Campaign) Stats {
	stats := Stats{
		TotalUsers:    len(users),
		TotalAccounts: len(accounts),
	}
	for _, c := range campaigns {
		if c.Active {
			stats.ActiveCampaigns++
		}
	}
	return stats
}
