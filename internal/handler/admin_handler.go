package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ericoliveiras/avalia-loja/internal/service"
)

// AdminHandler agrupa as rotas do painel administrativo.
type AdminHandler struct {
	Admin     *service.AdminService
	Directory *service.DirectoryService
	Log       *logrus.Logger
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16,password"`
	Address  string `json:"address" binding:"max=400"`
	Role     string `json:"role" binding:"required"`
}

type createStoreRequest struct {
	Name          string `json:"name" binding:"required,notblank,max=100"`
	Email         string `json:"email" binding:"required,email"`
	Address       string `json:"address" binding:"max=400"`
	OwnerName     string `json:"ownerName" binding:"required,min=20,max=60"`
	OwnerPassword string `json:"ownerPassword" binding:"required,min=8,max=16,password"`
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.Admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Directory.ListUsers(c.Request.Context(), service.UserQuery{
		Search:    c.Query("search"),
		Role:      c.Query("role"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	user, err := h.Directory.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateUser cria um administrador ou usuário comum.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}

	user, err := h.Admin.CreateUser(c.Request.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("usuário criado pelo administrador")
	c.JSON(http.StatusCreated, gin.H{"message": "Usuário criado com sucesso!", "user": user})
}

func (h *AdminHandler) ListStores(c *gin.Context) {
	stores, err := h.Directory.ListStores(c.Request.Context(), service.StoreQuery{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		AdminView: true,
	})
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stores": stores})
}

// CreateStore cria a loja e a conta do dono na mesma transação.
func (h *AdminHandler) CreateStore(c *gin.Context) {
	var req createStoreRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}

	store, err := h.Admin.CreateStore(c.Request.Context(), service.CreateStoreInput{
		Name:          req.Name,
		Email:         req.Email,
		Address:       req.Address,
		OwnerName:     req.OwnerName,
		OwnerPassword: req.OwnerPassword,
	})
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	h.Log.WithFields(logrus.Fields{"store_id": store.ID, "owner_id": store.OwnerID}).Info("loja criada")
	c.JSON(http.StatusCreated, gin.H{"message": "Loja criada com sucesso!", "store": store})
}
