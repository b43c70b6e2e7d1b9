// internal/handlers/engagement.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type WatchlistHandler struct {
	watchlistService *services.WatchlistService
}

func NewWatchlistHandler(watchlistService *services.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// GET /watchlist/check?productId=&userEmail=
func (h *WatchlistHandler) CheckWatchlist(c *gin.Context) {
	var req services.WatchlistRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "query"), err.Error())
		return
	}

	exists, err := h.watchlistService.IsWatched(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"exists": exists})
}

// POST /watchlist
func (h *WatchlistHandler) AddToWatchlist(c *gin.Context) {
	var req services.WatchlistRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.watchlistService.AddToWatchlist(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /watchlist/:email
func (h *WatchlistHandler) GetWatchlist(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	entries, err := h.watchlistService.GetWatchlist(c.Request.Context(), email, c.Param("email"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, entries)
}

// DELETE /watchlist/:id
func (h *WatchlistHandler) RemoveFromWatchlist(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	result, err := h.watchlistService.RemoveFromWatchlist(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// POST /reviews
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reviewService.AddReview(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /reviews/:productId
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetProductReviews(c.Request.Context(), c.Param("productId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, reviews)
}
