package controllers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"

	"bbcd/internal/collector"
	"bbcd/internal/collector/interfaces"
	"bbcd/internal/models"
	"bbcd/internal/providers"
	"bbcd/internal/services"
	"bbcd/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const defaultHistoryLimit = 100

type ApiController struct {
	config    *structures.Config
	logger    providers.Logger
	service   services.RoundServiceInterface
	cache     providers.CacheProviderInterface
	scheduler interfaces.SchedulerInterface
}

func NewApiController(config *structures.Config, logger providers.Logger, service services.RoundServiceInterface, cache providers.CacheProviderInterface, scheduler interfaces.SchedulerInterface) *ApiController {
	return &ApiController{
		config:    config,
		logger:    logger,
		service:   service,
		cache:     cache,
		scheduler: scheduler,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"encoding failed"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetLatest returns the most recently appended round of the current day
// partition. An empty partition (including the stretch right after
// midnight) is an explicit no-data answer, never yesterday's round.
func (ac *ApiController) GetLatest(w http.ResponseWriter, r *http.Request) {
	round, ok := ac.service.Latest()
	if !ok {
		writeError(w, http.StatusNotFound, "no rounds recorded today")
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// GetHistory returns the last N rounds of the current partition, oldest
// first. N defaults to 100.
func (ac *ApiController) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	key := ac.service.CurrentPartitionKey()
	cacheKey := "history:" + key + ":" + strconv.Itoa(limit)
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		return ac.service.LastN(limit)
	})
}

// Download serves the raw current-partition file as an attachment.
func (ac *ApiController) Download(w http.ResponseWriter, r *http.Request) {
	key := ac.service.CurrentPartitionKey()
	path := ac.service.PartitionPath(key)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "no partition file for today")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="rounds_`+key+`.csv"`)
	http.ServeFile(w, r, path)
}

// ForceSync pushes the current partition to the mirror synchronously.
func (ac *ApiController) ForceSync(w http.ResponseWriter, r *http.Request) {
	key := ac.service.CurrentPartitionKey()
	ctx, cancel := context.WithTimeout(r.Context(), ac.config.Mirror.RequestTimeout)
	defer cancel()

	err := ac.scheduler.PushPartition(ctx, key)
	if errors.Is(err, collector.ErrMirrorDisabled) {
		writeError(w, http.StatusConflict, "mirror is disabled")
		return
	}
	if err != nil {
		ac.logger.Errorf(providers.TypeMirror, "Manual sync failed: %s", err)
		writeError(w, http.StatusBadGateway, "mirror push failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "partition": key})
}

// Register accepts a round pushed by an external collector, recomputes the
// side totals locally and appends it. No write happens on a malformed
// body.
func (ac *ApiController) Register(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var input models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if v := validate.Struct(&input); !v.Validate() {
		writeError(w, http.StatusBadRequest, v.Errors.OneError().Error())
		return
	}

	round := input.ToRound(time.Now())
	if err := ac.service.Append(round); err != nil {
		ac.logger.Errorf(providers.TypePost, "Failed to append registered round %s: %s", round.RoundID, err)
		writeError(w, http.StatusInternalServerError, "failed to persist round")
		return
	}

	if ac.config.Mirror.PushOnRegister {
		key := round.PartitionKey()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), ac.config.Mirror.RequestTimeout)
			defer cancel()
			if err := ac.scheduler.PushPartition(ctx, key); err != nil && !errors.Is(err, collector.ErrMirrorDisabled) {
				ac.logger.Errorf(providers.TypeMirror, "Post-register mirror push failed: %s", err)
			}
		}()
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "created", "round_id": round.RoundID})
}
