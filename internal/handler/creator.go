package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/veleda/arttrack/internal/domain"
	"github.com/veleda/arttrack/internal/logger"
	"github.com/veleda/arttrack/internal/repository"
)

// AddCreatorRequest is the body for following a new creator
type AddCreatorRequest struct {
	AccountID   string `json:"account_id" validate:"required,uuid"`
	Username    string `json:"username" validate:"required,min=1,max=64"`
	DisplayName string `json:"display_name" validate:"max=128"`
	AvatarURL   string `json:"avatar_url" validate:"omitempty,url"`
}

// HandleListCreators returns every creator followed by the account
// @Summary List followed creators
// @Tags creators
// @Produce json
// @Param account_id query string true "Account ID"
// @Success 200 {array} domain.Creator
// @Router /api/v1/creators [get]
func HandleListCreators(repo repository.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetUUIDParam(r, w, ParamAccountID)
		if !ok {
			return
		}

		creators, err := repo.GetCreators(r.Context(), accountID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgListCreatorsFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgListCreatorsFailed)
			return
		}
		if creators == nil {
			creators = []domain.Creator{}
		}
		respondJSON(w, http.StatusOK, creators)
	}
}

// HandleGetCreator returns one followed creator
// @Summary Get a followed creator
// @Tags creators
// @Produce json
// @Param account_id query string true "Account ID"
// @Param creator_id query string true "Creator ID"
// @Success 200 {object} domain.Creator
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/creators/get [get]
func HandleGetCreator(repo repository.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetUUIDParam(r, w, ParamAccountID)
		if !ok {
			return
		}
		creatorID, ok := GetUUIDParam(r, w, ParamCreatorID)
		if !ok {
			return
		}

		creator, err := repo.GetCreatorByID(r.Context(), accountID, creatorID)
		if err != nil {
			if errors.Is(err, domain.ErrCreatorNotFound) {
				respondError(w, http.StatusNotFound, ErrMsgCreatorNotFoundHTTP)
				return
			}
			logger.FromContext(r.Context()).Error(ErrMsgListCreatorsFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
			return
		}
		respondJSON(w, http.StatusOK, creator)
	}
}

// HandleAddCreator follows a new creator for the account
// @Summary Follow a creator
// @Tags creators
// @Accept json
// @Produce json
// @Param request body AddCreatorRequest true "Creator to follow"
// @Success 201 {object} domain.Creator
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/creators [post]
func HandleAddCreator(repo repository.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddCreatorRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add creator"); err != nil {
			return
		}

		accountID := uuid.MustParse(req.AccountID)
		creator, err := repo.AddCreator(r.Context(), domain.Creator{
			AccountID:   accountID,
			Username:    req.Username,
			DisplayName: req.DisplayName,
			AvatarURL:   req.AvatarURL,
		})
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgAddCreatorFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgAddCreatorFailed)
			return
		}
		respondJSON(w, http.StatusCreated, creator)
	}
}

// HandleDeleteCreator unfollows a creator, cascading to its items
// @Summary Unfollow a creator
// @Tags creators
// @Produce json
// @Param account_id query string true "Account ID"
// @Param creator_id query string true "Creator ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/creators [delete]
func HandleDeleteCreator(repo repository.Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := GetUUIDParam(r, w, ParamAccountID)
		if !ok {
			return
		}
		creatorID, ok := GetUUIDParam(r, w, ParamCreatorID)
		if !ok {
			return
		}

		if err := repo.DeleteCreator(r.Context(), accountID, creatorID); err != nil {
			if errors.Is(err, domain.ErrCreatorNotFound) {
				respondError(w, http.StatusNotFound, ErrMsgCreatorNotFoundHTTP)
				return
			}
			logger.FromContext(r.Context()).Error(ErrMsgDeleteCreatorFailed, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgDeleteCreatorFailed)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "creator removed"})
	}
}
