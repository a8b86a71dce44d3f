package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ericoliveiras/avalia-loja/internal/middleware"
	"github.com/ericoliveiras/avalia-loja/internal/service"
)

// StoreHandler atende o diretório de lojas, o envio de notas e o painel do dono.
type StoreHandler struct {
	Directory *service.DirectoryService
	Ratings   *service.RatingService
	Log       *logrus.Logger
}

type ratingRequest struct {
	StoreID uint `json:"storeId" binding:"required"`
	Rating  int  `json:"rating"`
}

// ListStores lista as lojas com a nota média e a nota do próprio usuário.
func (h *StoreHandler) ListStores(c *gin.Context) {
	user := currentUser(c)
	stores, err := h.Directory.ListStores(c.Request.Context(), service.StoreQuery{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		ViewerID:  user.ID,
	})
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// SubmitRating grava ou substitui a nota do usuário para a loja.
func (h *StoreHandler) SubmitRating(c *gin.Context) {
	var req ratingRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}

	user := currentUser(c)
	rating, err := h.Ratings.Submit(c.Request.Context(), user.ID, req.StoreID, req.Rating)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	middleware.RecordRating(rating.Value)

	agg, err := h.Ratings.Aggregate(c.Request.Context(), rating.StoreID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Avaliação registrada com sucesso!",
		"rating":  rating,
		"store":   gin.H{"id": rating.StoreID, "averageRating": agg.Average, "totalRatings": agg.Count},
	})
}

// OwnerDashboard mostra ao dono a média da própria loja e quem avaliou.
func (h *StoreHandler) OwnerDashboard(c *gin.Context) {
	user := currentUser(c)
	dash, err := h.Ratings.OwnerDashboard(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
