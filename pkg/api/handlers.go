package api

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"slices"
	"strconv"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/FactoryScout/internal/checkpoint"
	"github.com/goran-ethernal/FactoryScout/internal/logger"
	pkgcheckpoint "github.com/goran-ethernal/FactoryScout/pkg/checkpoint"
	"github.com/goran-ethernal/FactoryScout/pkg/factory"
)

// Handler serves read-only views of the discovery checkpoint.
type Handler struct {
	checkpointPath string
	log            *logger.Logger
}

// NewHandler creates a new API handler reading the checkpoint at checkpointPath.
func NewHandler(checkpointPath string, log *logger.Logger) *Handler {
	return &Handler{
		checkpointPath: checkpointPath,
		log:            log,
	}
}

// Health reports that the API is serving.
// @Summary Health check
// @Description Liveness probe of the API server
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
	})
}

// GetStatus returns the discovery progress.
// @Summary Discovery status
// @Description Last scanned block and factory totals from the checkpoint
// @Tags Discovery
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} ErrorResponse "Checkpoint unreadable"
// @Router /status [get]
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	store, ok := h.loadCheckpoint(w)
	if !ok {
		return
	}

	status := StatusResponse{
		LastBlock: store.LastBlock(),
		Factories: store.Len(),
		Kinds:     make(map[string]int),
	}
	for _, fc := range store.Factories() {
		status.AMMs += fc.AMMs
		status.Kinds[fc.Factory.Kind.String()]++
	}

	respondJSON(w, http.StatusOK, status)
}

// ListFactories returns the known factories, most productive first.
// @Summary List factories
// @Description Factories with at least min_amms AMMs, optionally restricted to one kind
// @Tags Factories
// @Produce json
// @Param min_amms query integer false "Minimum AMM count" default(0)
// @Param kind query string false "Factory kind" Enums(uniswap_v2, uniswap_v3)
// @Success 200 {object} FactoryListResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Checkpoint unreadable"
// @Router /factories [get]
func (h *Handler) ListFactories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var minAMMs uint64
	if v := query.Get("min_amms"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid min_amms %q", v))
			return
		}
		minAMMs = parsed
	}

	var kind factory.Kind
	if v := query.Get("kind"); v != "" {
		parsed, err := factory.ParseKind(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		kind = parsed
	}

	store, ok := h.loadCheckpoint(w)
	if !ok {
		return
	}

	infos := make([]FactoryInfo, 0, store.Len())
	for _, fc := range store.Factories() {
		if fc.AMMs < minAMMs || (kind != "" && fc.Factory.Kind != kind) {
			continue
		}
		infos = append(infos, toFactoryInfo(fc))
	}
	sortFactories(infos)

	respondJSON(w, http.StatusOK, FactoryListResponse{
		Factories: infos,
		Total:     len(infos),
		LastBlock: store.LastBlock(),
	})
}

// GetFactory returns a single factory by address.
// @Summary Get factory
// @Description A known factory and its AMM count
// @Tags Factories
// @Produce json
// @Param address path string true "Factory address"
// @Success 200 {object} FactoryInfo
// @Failure 400 {object} ErrorResponse "Invalid address"
// @Failure 404 {object} ErrorResponse "Factory not found"
// @Failure 500 {object} ErrorResponse "Checkpoint unreadable"
// @Router /factories/{address} [get]
func (h *Handler) GetFactory(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("address")
	if !ethcommon.IsHexAddress(raw) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid address %q", raw))
		return
	}
	address := ethcommon.HexToAddress(raw)

	store, ok := h.loadCheckpoint(w)
	if !ok {
		return
	}

	fc, found := store.Get(address)
	if !found {
		respondError(w, http.StatusNotFound, fmt.Sprintf("factory %s not found", address.Hex()))
		return
	}

	respondJSON(w, http.StatusOK, toFactoryInfo(fc))
}

// loadCheckpoint reads the checkpoint, treating a missing file as an empty one.
// On failure it writes the error response and returns false.
func (h *Handler) loadCheckpoint(w http.ResponseWriter) (*checkpoint.FileStore, bool) {
	store, err := checkpoint.Load(h.checkpointPath, h.log)
	if err == nil {
		return store, true
	}

	if errors.Is(err, fs.ErrNotExist) {
		return checkpoint.New(h.checkpointPath, h.log), true
	}

	h.log.Errorw("failed to load checkpoint", "path", h.checkpointPath, "error", err)
	respondError(w, http.StatusInternalServerError, "failed to load checkpoint")
	return nil, false
}

func toFactoryInfo(fc pkgcheckpoint.FactoryCount) FactoryInfo {
	return FactoryInfo{
		Address:       fc.Factory.Address.Hex(),
		Kind:          fc.Factory.Kind.String(),
		CreationBlock: fc.Factory.CreationBlock,
		Fee:           fc.Factory.Fee(),
		AMMs:          fc.AMMs,
	}
}

func sortFactories(infos []FactoryInfo) {
	slices.SortFunc(infos, func(a, b FactoryInfo) int {
		if c := cmp.Compare(b.AMMs, a.AMMs); c != 0 {
			return c
		}
		return bytes.Compare(
			ethcommon.HexToAddress(a.Address).Bytes(),
			ethcommon.HexToAddress(b.Address).Bytes(),
		)
	})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so an encoding failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
