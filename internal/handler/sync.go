package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/sync"
)

// ScrapeRequest identifies one creator to check or scrape
type ScrapeRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	CreatorID string `json:"creator_id" validate:"required,uuid"`
}

// BatchSyncRequest triggers the check-then-scrape batch for an account
type BatchSyncRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
}

// ReconcileRequest triggers a follow-list reconciliation
type ReconcileRequest struct {
	AccountID        string `json:"account_id" validate:"required,uuid"`
	RemoteUsername   string `json:"remote_username" validate:"required,min=1,max=64"`
	ClearExisting    bool   `json:"clear_existing"`
	SkipItemBackfill bool   `json:"skip_item_backfill"`
}

// HandleCheckForUpdates runs the cheap first-page existence check
// @Summary Check a creator for updates
// @Tags sync
// @Accept json
// @Produce json
// @Param request body ScrapeRequest true "Creator to check"
// @Success 200 {object} domain.CheckResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sync/check [post]
func HandleCheckForUpdates(service sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScrapeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Check for updates"); err != nil {
			return
		}

		result, err := service.CheckForUpdates(r.Context(), uuid.MustParse(req.AccountID), uuid.MustParse(req.CreatorID))
		if err != nil {
			respondSyncError(w, r, err, ErrMsgCheckFailed)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleScrapeFull walks every gallery page for one creator
// @Summary Full scrape of one creator
// @Tags sync
// @Accept json
// @Produce json
// @Param request body ScrapeRequest true "Creator to scrape"
// @Success 200 {object} domain.ScrapeResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sync/scrape [post]
func HandleScrapeFull(service sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScrapeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Full scrape"); err != nil {
			return
		}

		result, err := service.ScrapeFull(r.Context(), uuid.MustParse(req.AccountID), uuid.MustParse(req.CreatorID))
		if err != nil {
			respondSyncError(w, r, err, ErrMsgScrapeFailed)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleScrapeIncremental scrapes one creator up to the first known item
// @Summary Incremental scrape of one creator
// @Tags sync
// @Accept json
// @Produce json
// @Param request body ScrapeRequest true "Creator to scrape"
// @Success 200 {object} domain.ScrapeResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/sync/scrape-incremental [post]
func HandleScrapeIncremental(service sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ScrapeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Incremental scrape"); err != nil {
			return
		}

		result, err := service.ScrapeIncremental(r.Context(), uuid.MustParse(req.AccountID), uuid.MustParse(req.CreatorID))
		if err != nil {
			respondSyncError(w, r, err, ErrMsgScrapeFailed)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleScrapeAll runs the batch sync for every creator of the account
// @Summary Sync every followed creator
// @Tags sync
// @Accept json
// @Produce json
// @Param request body BatchSyncRequest true "Account to sync"
// @Success 200 {object} domain.BatchResult
// @Router /api/v1/sync/all [post]
func HandleScrapeAll(service sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchSyncRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Batch sync"); err != nil {
			return
		}

		result, err := service.ScrapeAllForAccount(r.Context(), uuid.MustParse(req.AccountID))
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgBatchSyncFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgBatchSyncFailed)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleReconcileFollowing diffs the remote follow list into local creators
// @Summary Reconcile the follow list
// @Tags sync
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Reconcile options"
// @Success 200 {object} domain.ReconcileResult
// @Failure 422 {object} ErrorResponse
// @Router /api/v1/sync/reconcile [post]
func HandleReconcileFollowing(service sync.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ReconcileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Reconcile following"); err != nil {
			return
		}

		result, err := service.ReconcileFollowing(r.Context(), uuid.MustParse(req.AccountID),
			req.RemoteUsername, req.ClearExisting, req.SkipItemBackfill)
		if err != nil {
			if errors.Is(err, sync.ErrNoFollowedCreators) {
				respondError(w, http.StatusUnprocessableEntity, ErrMsgNoFollowedHTTP)
				return
			}
			logger.FromContext(r.Context()).Error(ErrMsgReconcileFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgReconcileFailed)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// respondSyncError maps sync-layer errors onto HTTP statuses
func respondSyncError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, domain.ErrCreatorNotFound) {
		respondError(w, http.StatusNotFound, ErrMsgCreatorNotFoundHTTP)
		return
	}
	logger.FromContext(r.Context()).Error(fallback, "error", err)
	respondError(w, http.StatusInternalServerError, fallback)
}
