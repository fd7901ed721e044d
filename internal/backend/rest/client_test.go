package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kkkkikiki/lukitas/internal/backend"
	"github.com/kkkkikiki/lukitas/internal/model"
)

const testKey = "anon-key"

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, testKey, opts...)
	require.NoError(t, err)
	return c
}

func assertAuth(t *testing.T, r *http.Request) {
	t.Helper()
	assert.Equal(t, testKey, r.Header.Get("apikey"))
	assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))
}

func TestNewValidation(t *testing.T) {
	_, err := New("", "k")
	require.Error(t, err)
	_, err = New("https://x.supabase.co", " ")
	require.Error(t, err)
	_, err = New("ftp://x", "k")
	require.Error(t, err)
	_, err = New("https://x.supabase.co", "k")
	require.NoError(t, err)
}

func TestListUsersNewestFirst(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertAuth(t, r)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/users", r.URL.Path)
		assert.Equal(t, "*", r.URL.Query().Get("select"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id":2,"nombre":"Ana","apellido":"Rojas","email":"ana@uni.pe","codigo_estudiante":"20201234","role_id":1,"activo":true,"empresa":"","universidad":"UNI","created_at":"2024-03-02T10:00:00+00:00"},
			{"id":1,"nombre":"Luis","apellido":"Paz","email":"luis@uni.pe","codigo_estudiante":null,"role_id":2,"activo":false,"empresa":"Acme","universidad":"UNI","created_at":"2024-03-01T10:00:00+00:00"}
		]`)
	})

	users, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].ID)
	assert.Equal(t, "Ana Rojas", users[0].FullName())
	require.NotNil(t, users[0].StudentCode)
	assert.Equal(t, "20201234", *users[0].StudentCode)
	assert.Nil(t, users[1].StudentCode)
	assert.False(t, users[1].Active)
}

func TestListAccountsAndCampaigns(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/cuentas":
			io.WriteString(w, `[{"id":10,"user_id":2,"numero_cuenta":"LK-0001","saldo":25.75,"estado":"activa","campanas_id":null,"created_at":"2024-03-02"}]`)
		case "/rest/v1/campanas":
			io.WriteString(w, `[{"id":5,"user_id":3,"nombre":"Reciclaje","descripcion":null,"fecha_inicio":"2024-04-01","fecha_fin":"2024-04-30","lugar":"Patio","presupuesto":1200,"estado":true,"created_at":"2024-03-02"}]`)
		default:
			http.NotFound(w, r)
		}
	})

	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, 25.75, accounts[0].Balance)
	assert.Nil(t, accounts[0].CampaignID)

	campaigns, err := c.ListCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "2024-04-01", campaigns[0].StartDate)
	assert.Equal(t, 1200.0, campaigns[0].BudgetValue())
	assert.True(t, campaigns[0].Active)
}

func TestSetAccountBalance(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertAuth(t, r)
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/cuentas", r.URL.Path)
		assert.Equal(t, "eq.10", r.URL.Query().Get("id"))
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.SetAccountBalance(context.Background(), 10, -150.5))
	assert.Equal(t, map[string]any{"saldo": -150.5}, got)
}

func TestSetCampaignActive(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rest/v1/campanas", r.URL.Path)
		assert.Equal(t, "eq.5", r.URL.Query().Get("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.SetCampaignActive(context.Background(), 5, false))
	assert.Equal(t, map[string]any{"estado": false}, got)
}

func TestCreateCampaign(t *testing.T) {
	var got []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assertAuth(t, r)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/campanas", r.URL.Path)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `[{"id":42,"user_id":3,"nombre":"Feria","descripcion":"","fecha_inicio":"2024-05-01","fecha_fin":"2024-05-02","lugar":"Aula 1","presupuesto":99.9,"estado":true,"created_at":"2024-04-20T08:00:00+00:00"}]`)
	})

	created, err := c.CreateCampaign(context.Background(), model.NewCampaign{
		UserID:    3,
		Name:      "Feria",
		StartDate: "2024-05-01",
		EndDate:   "2024-05-02",
		Location:  "Aula 1",
		Budget:    99.9,
		Active:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.NotEmpty(t, created.CreatedAt)

	require.Len(t, got, 1)
	assert.Equal(t, "Feria", got[0]["nombre"])
	assert.Equal(t, 3.0, got[0]["user_id"])
	assert.Equal(t, true, got[0]["estado"])
	assert.NotContains(t, got[0], "id")
}

func TestCreateCampaignEmptyResult(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `[]`)
	})

	_, err := c.CreateCampaign(context.Background(), model.NewCampaign{Name: "x"})
	se, ok := backend.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, backend.OpCreateCampaign, se.Op)
}

func TestErrorBodyBecomesServiceError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantMsg    string
		wantDetail string
	}{
		{
			name:     "postgrest auth",
			status:   http.StatusUnauthorized,
			body:     `{"code":"PGRST301","message":"JWT expired","details":null,"hint":null}`,
			wantCode: "PGRST301",
			wantMsg:  "JWT expired",
		},
		{
			name:       "constraint violation",
			status:     http.StatusConflict,
			body:       `{"code":"23514","message":"new row violates check constraint","details":"Failing row contains (...)","hint":null}`,
			wantCode:   "23514",
			wantMsg:    "new row violates check constraint",
			wantDetail: "Failing row contains (...)",
		},
		{
			name:    "plain text",
			status:  http.StatusBadGateway,
			body:    "upstream down",
			wantMsg: "upstream down",
		},
		{
			name:    "empty body",
			status:  http.StatusServiceUnavailable,
			wantMsg: "Service Unavailable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			err := c.SetCampaignActive(context.Background(), 1, true)
			se, ok := backend.AsServiceError(err)
			require.True(t, ok, "want ServiceError, got %v", err)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantCode, se.Code)
			assert.Equal(t, tt.wantMsg, se.Message)
			assert.Equal(t, tt.wantDetail, se.Details)
			assert.Equal(t, model.TableCampaigns, se.Table)
		})
	}
}

func TestTransportFailureIsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url, testKey)
	require.NoError(t, err)

	_, err = c.ListCampaigns(context.Background())
	se, ok := backend.AsServiceError(err)
	require.True(t, ok)
	assert.Zero(t, se.StatusCode)
	assert.Error(t, errors.Unwrap(se))
}

func TestMalformedResponseIsServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not":"a list"}`)
	})

	_, err := c.ListAccounts(context.Background())
	se, ok := backend.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, se.StatusCode)
}

func TestRateLimitHonoursContext(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		io.WriteString(w, `[]`)
	}, WithRateLimit(0.001))

	require.NoError(t, c.Ping(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Ping(ctx)
	_, ok := backend.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 1, calls)
}

func TestSpansRecorded(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		io.WriteString(w, `[]`)
	}, WithTracer(provider.Tracer("test")))

	_, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	require.Error(t, c.SetAccountBalance(context.Background(), 1, 1))

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "backend.list_users", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, "backend.set_account_balance", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}
