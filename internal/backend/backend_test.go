package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kkkkikiki/lukitas/internal/metrics"
	"github.com/kkkkikiki/lukitas/internal/model"
)

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{
		Op:         OpSetAccountBalance,
		Table:      model.TableAccounts,
		StatusCode: 401,
		Code:       "PGRST301",
		Message:    "JWT expired",
	}
	assert.Equal(t, "set_account_balance cuentas: status 401 (PGRST301): JWT expired", err.Error())
}

func TestWrapKeepsExistingServiceError(t *testing.T) {
	inner := &ServiceError{Op: OpListUsers, Message: "boom"}
	wrapped := fmt.Errorf("loading: %w", inner)

	got := Wrap(OpListAccounts, model.TableAccounts, wrapped)
	se, ok := AsServiceError(got)
	require.True(t, ok)
	assert.Same(t, inner, se)

	cause := errors.New("dial tcp: refused")
	got = Wrap(OpListAccounts, model.TableAccounts, cause)
	se, ok = AsServiceError(got)
	require.True(t, ok)
	assert.Equal(t, OpListAccounts, se.Op)
	assert.ErrorIs(t, got, cause)

	assert.NoError(t, Wrap(OpPing, "", nil))
}

type stubClient struct {
	Client
	err error
}

func (s stubClient) SetCampaignActive(context.Context, int64, bool) error { return s.err }

func TestInstrumentRecordsOutcome(t *testing.T) {
	before := testutil.CollectAndCount(metrics.BackendCallDuration)

	ok := Instrument(stubClient{})
	require.NoError(t, ok.SetCampaignActive(context.Background(), 1, true))

	failing := Instrument(stubClient{err: &ServiceError{Op: OpSetCampaignActive}})
	require.Error(t, failing.SetCampaignActive(context.Background(), 1, false))

	// one new series per outcome
	assert.Equal(t, before+2, testutil.CollectAndCount(metrics.BackendCallDuration))
}
