package review

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/mindshift/backend/internal/observability"
	reviewService "github.com/zhouzirui/mindshift/backend/internal/service/review"
	"github.com/zhouzirui/mindshift/backend/pkg/utils"
)

// Handler 用户评价的HTTP处理器
type Handler struct {
	reviewSvc *reviewService.Service
}

// New 创建评价处理器
func New(reviewSvc *reviewService.Service) *Handler {
	return &Handler{reviewSvc: reviewSvc}
}

// RegisterRoutes 注册评价相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reviews", h.handleList)
	r.Post("/reviews", h.handleSubmit)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSvc.List(r.Context())
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error("review: list failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load reviews")
		return
	}
	utils.RespondJSON(w, http.StatusOK, reviews)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
		Rating  int    `json:"rating"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.reviewSvc.Submit(r.Context(), payload.Content, payload.Rating)
	switch {
	case err == nil:
		utils.RespondJSON(w, http.StatusCreated, created)
	case errors.Is(err, reviewService.ErrSignInRequired):
		utils.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, reviewService.ErrContentRequired), errors.Is(err, reviewService.ErrInvalidRating):
		utils.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		observability.LoggerFromContext(r.Context()).Error("review: submit failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to submit review")
	}
}
