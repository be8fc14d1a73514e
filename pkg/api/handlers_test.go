package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/checkpoint"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
	"github.com/stretchr/testify/require"
)

var (
	v2Factory   = ethcommon.HexToAddress("0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f")
	v3Factory   = ethcommon.HexToAddress("0x1F98431c8aD98523631AE4a59f267346ea31F984")
	sushiswapV2 = ethcommon.HexToAddress("0xC0AEe478e3658e2610c5F7A4A2E1777cE9e4f2Ac")
)

// writeCheckpoint saves a checkpoint at block 500 with v2Factory (5 AMMs), v3Factory (3 AMMs)
// and sushiswapV2 (5 AMMs).
func writeCheckpoint(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "factories.json")
	store := checkpoint.New(path, logger.NewNopLogger())

	for _, f := range []struct {
		kind    factory.Kind
		address ethcommon.Address
		block   uint64
		amms    int
	}{
		{factory.KindUniswapV2, v2Factory, 10, 5},
		{factory.KindUniswapV3, v3Factory, 50, 3},
		{factory.KindUniswapV2, sushiswapV2, 70, 5},
	} {
		rec, err := factory.NewRecord(f.kind, f.address, f.block)
		require.NoError(t, err)
		store.AddFactory(f.address, rec)
		for range f.amms {
			store.IncAMMs(f.address)
		}
	}
	store.SetLastBlock(500)
	require.NoError(t, store.Save())

	return path
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusCreated, map[string]string{"message": "ok"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"message":"ok"}`, w.Body.String())

	// Unencodable payloads fall back to a plain 500
	w = httptest.NewRecorder()
	respondJSON(w, http.StatusOK, make(chan int))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondError(w, http.StatusNotFound, "factory not found")

	resp := decodeBody[ErrorResponse](t, w)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, ErrorResponse{Error: "Not Found", Message: "factory not found", Code: http.StatusNotFound}, resp)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h := NewHandler(filepath.Join(t.TempDir(), "missing.json"), logger.NewNopLogger())

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := decodeBody[HealthResponse](t, w)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", resp.Status)
	require.False(t, resp.Timestamp.IsZero())
}

func TestHandler_GetStatus(t *testing.T) {
	t.Parallel()

	t.Run("with checkpoint", func(t *testing.T) {
		t.Parallel()

		h := NewHandler(writeCheckpoint(t), logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.GetStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

		resp := decodeBody[StatusResponse](t, w)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, uint64(500), resp.LastBlock)
		require.Equal(t, 3, resp.Factories)
		require.Equal(t, uint64(13), resp.AMMs)
		require.Equal(t, map[string]int{"uniswap_v2": 2, "uniswap_v3": 1}, resp.Kinds)
	})

	t.Run("missing checkpoint", func(t *testing.T) {
		t.Parallel()

		h := NewHandler(filepath.Join(t.TempDir(), "missing.json"), logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.GetStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

		resp := decodeBody[StatusResponse](t, w)
		require.Equal(t, http.StatusOK, w.Code)
		require.Zero(t, resp.LastBlock)
		require.Zero(t, resp.Factories)
	})

	t.Run("corrupt checkpoint", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "factories.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		h := NewHandler(path, logger.NewNopLogger())
		w := httptest.NewRecorder()
		h.GetStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

		resp := decodeBody[ErrorResponse](t, w)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "failed to load checkpoint", resp.Message)
	})
}

func TestHandler_ListFactories(t *testing.T) {
	t.Parallel()

	path := writeCheckpoint(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expected       []string
	}{
		{
			name:           "all factories ordered by amms then address",
			expectedStatus: http.StatusOK,
			expected:       []string{v2Factory.Hex(), sushiswapV2.Hex(), v3Factory.Hex()},
		},
		{
			name:           "min amms",
			query:          "?min_amms=4",
			expectedStatus: http.StatusOK,
			expected:       []string{v2Factory.Hex(), sushiswapV2.Hex()},
		},
		{
			name:           "kind filter",
			query:          "?kind=UNISWAP_V3",
			expectedStatus: http.StatusOK,
			expected:       []string{v3Factory.Hex()},
		},
		{
			name:           "nothing above threshold",
			query:          "?min_amms=6",
			expectedStatus: http.StatusOK,
			expected:       []string{},
		},
		{
			name:           "invalid min amms",
			query:          "?min_amms=-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown kind",
			query:          "?kind=curve",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHandler(path, logger.NewNopLogger())
			w := httptest.NewRecorder()
			h.ListFactories(w, httptest.NewRequest(http.MethodGet, "/api/v1/factories"+tt.query, nil))

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			resp := decodeBody[FactoryListResponse](t, w)
			require.Equal(t, len(tt.expected), resp.Total)
			require.Equal(t, uint64(500), resp.LastBlock)

			addrs := make([]string, 0, len(resp.Factories))
			for _, f := range resp.Factories {
				addrs = append(addrs, f.Address)
			}
			require.Equal(t, tt.expected, addrs)
		})
	}
}

func TestHandler_GetFactory(t *testing.T) {
	t.Parallel()

	path := writeCheckpoint(t)

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/factories/x", nil)
		req.SetPathValue("address", "0x5c69bee701ef814a2b6a3edd4b1652cb9cc5aa6f")

		w := httptest.NewRecorder()
		NewHandler(path, logger.NewNopLogger()).GetFactory(w, req)

		resp := decodeBody[FactoryInfo](t, w)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, FactoryInfo{
			Address:       v2Factory.Hex(),
			Kind:          "uniswap_v2",
			CreationBlock: 10,
			Fee:           factory.DefaultUniswapV2Fee,
			AMMs:          5,
		}, resp)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/factories/x", nil)
		req.SetPathValue("address", "0x0000000000000000000000000000000000000001")

		w := httptest.NewRecorder()
		NewHandler(path, logger.NewNopLogger()).GetFactory(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid address", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/factories/x", nil)
		req.SetPathValue("address", "not-an-address")

		w := httptest.NewRecorder()
		NewHandler(path, logger.NewNopLogger()).GetFactory(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
