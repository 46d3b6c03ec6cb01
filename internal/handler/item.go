package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/repository"
)

// MarkSeenRequest identifies one item to clear the new flag on
type MarkSeenRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	ItemID    string `json:"item_id" validate:"required,uuid"`
}

// MarkAllSeenRequest clears the new flag account-wide or per creator
type MarkAllSeenRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
	CreatorID string `json:"creator_id" validate:"omitempty,uuid"`
}

// HandleListItems returns stored items, newest first, narrowed by filters
// @Summary List tracked items
// @Tags items
// @Produce json
// @Param account_id query string true "Account ID"
// @Param creator_id query string false "Creator ID"
// @Param new_only query string false "Only unseen items"
// @Param favorites query string false "Only favorites"
// @Success 200 {array} domain.Item
// @Router /api/v1/items [get]
func HandleListItems(repo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetUUIDParam(r, w, ParamAccountID)
		if !ok {
			return
		}

		filter := domain.ItemFilter{
			NewOnly:       r.URL.Query().Get(ParamNewOnly) == "true",
			FavoritesOnly: r.URL.Query().Get(ParamFavorites) == "true",
		}
		if raw := r.URL.Query().Get(ParamCreatorID); raw != "" {
			creatorID, err := uuid.Parse(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			filter.CreatorID = &creatorID
		}

		items, err := repo.GetItems(r.Context(), accountID, filter)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListItemsFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListItemsFailed)
			return
		}
		if items == nil {
			items = []domain.Item{}
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleMarkItemSeen clears the new flag on one item
// @Summary Mark an item as seen
// @Tags items
// @Accept json
// @Produce json
// @Param request body MarkSeenRequest true "Item to mark"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/seen [post]
func HandleMarkItemSeen(repo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkSeenRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Mark item seen"); err != nil {
			return
		}

		err := repo.MarkItemSeen(r.Context(), uuid.MustParse(req.AccountID), uuid.MustParse(req.ItemID))
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				respondError(w, http.StatusNotFound, ErrMsgItemNotFoundHTTP)
				return
			}
			logger.FromContext(r.Context()).Error(ErrMsgMarkSeenFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgMarkSeenFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "item marked seen"})
	}
}

// HandleMarkAllSeen clears the new flag for the account, optionally scoped
// to one creator
// @Summary Mark all items as seen
// @Tags items
// @Accept json
// @Produce json
// @Param request body MarkAllSeenRequest true "Scope"
// @Success 200 {object} CountResponse
// @Router /api/v1/items/seen-all [post]
func HandleMarkAllSeen(repo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkAllSeenRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Mark all seen"); err != nil {
			return
		}

		var creatorID *uuid.UUID
		if req.CreatorID != "" {
			id := uuid.MustParse(req.CreatorID)
			creatorID = &id
		}

		cleared, err := repo.MarkAllSeen(r.Context(), uuid.MustParse(req.AccountID), creatorID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgMarkAllSeenFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgMarkAllSeenFailed)
			return
		}
		respondJSON(w, http.StatusOK, CountResponse{Count: cleared})
	}
}

// FavoriteResponse reports the favorite flag after a toggle
type FavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

// HandleToggleFavorite flips the favorite flag on one item
// @Summary Toggle item favorite
// @Tags items
// @Accept json
// @Produce json
// @Param request body MarkSeenRequest true "Item to toggle"
// @Success 200 {object} FavoriteResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/items/favorite [post]
func HandleToggleFavorite(repo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkSeenRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Toggle favorite"); err != nil {
			return
		}

		fav, err := repo.ToggleFavorite(r.Context(), uuid.MustParse(req.AccountID), uuid.MustParse(req.ItemID))
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				respondError(w, http.StatusNotFound, ErrMsgItemNotFoundHTTP)
				return
			}
			logger.FromContext(r.Context()).Error(ErrMsgToggleFavoriteFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgToggleFavoriteFailed)
			return
		}
		respondJSON(w, http.StatusOK, FavoriteResponse{IsFavorite: fav})
	}
}

// HandleCountNew reports how many unseen items the account has
// @Summary Count unseen items
// @Tags items
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {object} CountResponse
// @Router /api/v1/items/new-count [get]
func HandleCountNew(repo repository.Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetUUIDParam(r, w, ParamAccountID)
		if !ok {
			return
		}

		count, err := repo.CountNew(r.Context(), accountID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgCountNewFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgCountNewFailed)
			return
		}
		respondJSON(w, http.StatusOK, CountResponse{Count: count})
	}
}
