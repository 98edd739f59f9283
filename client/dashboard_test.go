package client_test

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rakadenta/dompet/client"
)

const statisticsBody = `{"status":200,"data":{
	"walletId":7,
	"totalTransaction":"620.25",
	"totalIncome":"500",
	"totalOutcome":"120.25",
	"allTransactionByType":[
		{"type":"income","amount":"500"},
		{"type":"outcome","amount":"120.25"}],
	"allTransactionByCategory":[
		{"category":"groceries","amount":"80.25"},
		{"category":"transport","amount":"40"}]}}`

func TestStatistics(t *testing.T) {
	t.Run("decodes the data envelope", func(t *testing.T) {
		var recorded []recordedRequest
		api, _, _ := newTestClient(t, recordingHandler(&recorded, http.StatusOK, statisticsBody))

		stats, err := api.Statistics(context.Background(), 7, false)
		require.NoError(t, err)

		assert.Equal(t, int64(7), stats.WalletID)
		assert.True(t, stats.TotalTransaction.Equal(decimal.RequireFromString("620.25")))
		assert.True(t, stats.TotalIncome.Equal(decimal.RequireFromString("500")))
		assert.True(t, stats.TotalOutcome.Equal(decimal.RequireFromString("120.25")))

		require.Len(t, stats.ByType, 2)
		assert.Equal(t, "income", stats.ByType[0].Type)
		assert.True(t, stats.ByType[1].Amount.Equal(decimal.RequireFromString("120.25")))

		require.Len(t, stats.ByCategory, 2)
		assert.Equal(t, "groceries", stats.ByCategory[0].Category)
		assert.True(t, stats.ByCategory[0].Amount.Equal(decimal.RequireFromString("80.25")))

		require.Len(t, recorded, 1)
		assert.Equal(t, "/api/wallets/transactions/statistics", recorded[0].Path)
		assert.Equal(t, "isYear=false&walletId=7", recorded[0].Query)
	})

	t.Run("yearly period travels as isYear", func(t *testing.T) {
		var recorded []recordedRequest
		api, _, _ := newTestClient(t, recordingHandler(&recorded, http.StatusOK, statisticsBody))

		_, err := api.Statistics(context.Background(), 7, true)
		require.NoError(t, err)

		require.Len(t, recorded, 1)
		assert.Equal(t, "isYear=true&walletId=7", recorded[0].Query)
	})
}

func TestOverview(t *testing.T) {
	t.Run("fetches the four dashboard resources", func(t *testing.T) {
		var mu sync.Mutex
		paths := map[string]int{}

		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			paths[r.URL.Path]++
			mu.Unlock()

			switch r.URL.Path {
			case "/api/wallets/7":
				w.Write([]byte(`{"id":7,"name":"cash","balance":"100","currentBalance":"80"}`))
			case "/api/wallets/categories":
				w.Write([]byte(`[{"id":1,"name":"groceries"}]`))
			case "/api/wallets/transactions":
				w.Write([]byte(`[{"id":1,"type":"OUTCOME","amount":"20"}]`))
			case "/api/wallets/transactions/statistics":
				w.Write([]byte(statisticsBody))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))

		overview, err := api.Overview(context.Background(), 7, false)
		require.NoError(t, err)

		require.NotNil(t, overview.Wallet)
		assert.Equal(t, "cash", overview.Wallet.Name)
		assert.Len(t, overview.Categories, 1)
		assert.Len(t, overview.Transactions, 1)
		require.NotNil(t, overview.Statistics)
		assert.True(t, overview.Statistics.TotalIncome.Equal(decimal.RequireFromString("500")))

		mu.Lock()
		defer mu.Unlock()
		for _, path := range []string{
			"/api/wallets/7",
			"/api/wallets/categories",
			"/api/wallets/transactions",
			"/api/wallets/transactions/statistics",
		} {
			assert.Equal(t, 1, paths[path], path)
		}
	})

	t.Run("one failing fetch fails the whole overview", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/wallets/transactions/statistics" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`[]`))
		}))

		_, err := api.Overview(context.Background(), 7, false)
		assert.Error(t, err)
	})

	t.Run("a 401 from any fetch notifies the unauthorized handler", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		var mu sync.Mutex
		var fired int
		api.SetUnauthorizedHandler(func() {
			mu.Lock()
			fired++
			mu.Unlock()
		})

		_, err := api.Overview(context.Background(), 7, false)
		require.Error(t, err)
		assert.True(t, client.IsUnauthorizedError(err))

		mu.Lock()
		defer mu.Unlock()
		assert.GreaterOrEqual(t, fired, 1)
	})
}

func TestExportExcel(t *testing.T) {
	payload := []byte("PK\x03\x04 pretend spreadsheet bytes")

	t.Run("streams the export into the writer", func(t *testing.T) {
		var recorded []recordedRequest
		server := recordingHandler(&recorded, http.StatusOK, string(payload))
		api, store, _ := newTestClient(t, server)
		require.NoError(t, store.Set("tok-123"))

		var buf bytes.Buffer
		require.NoError(t, api.ExportExcel(context.Background(), 7, false, &buf))
		assert.Equal(t, payload, buf.Bytes())

		require.Len(t, recorded, 1)
		assert.Equal(t, "/api/wallets/export-excel/7", recorded[0].Path)
		assert.Equal(t, "isYear=false", recorded[0].Query)
	})

	t.Run("yearly export travels as isYear", func(t *testing.T) {
		var recorded []recordedRequest
		api, _, _ := newTestClient(t, recordingHandler(&recorded, http.StatusOK, string(payload)))

		var buf bytes.Buffer
		require.NoError(t, api.ExportExcel(context.Background(), 3, true, &buf))

		require.Len(t, recorded, 1)
		assert.Equal(t, "/api/wallets/export-excel/3", recorded[0].Path)
		assert.Equal(t, "isYear=true", recorded[0].Query)
	})

	t.Run("an error status writes nothing", func(t *testing.T) {
		api, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"expired"}`))
		}))

		var buf bytes.Buffer
		err := api.ExportExcel(context.Background(), 7, false, &buf)
		require.Error(t, err)
		assert.Zero(t, buf.Len())
	})
}

func TestMe(t *testing.T) {
	api, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"id":1,"name":"Amira","username":"amira"}`))
	}))
	require.NoError(t, store.Set("tok-123"))

	user, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Amira", user.Name)
	assert.Equal(t, "amira", user.Username)
}
