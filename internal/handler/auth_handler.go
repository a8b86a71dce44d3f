package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/auth"
	"github.com/ericoliveiras/avalia-loja/internal/middleware"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/service"
)

const userKey = "user"

// CookieConfig descreve o cookie que carrega o token de sessão.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

type AuthHandler struct {
	Accounts *service.AccountService
	Cookie   CookieConfig
	Log      *logrus.Logger
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16,password"`
	Address  string `json:"address" binding:"max=400"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=16,password"`
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, token, int(h.Cookie.TTL.Seconds()), "/", "", h.Cookie.Secure, true)
}

func (h *AuthHandler) clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
}

// Login confere as credenciais, grava o cookie e devolve também o token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}

	user, token, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	h.setAuthCookie(c, token)
	h.Log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("login realizado")
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Signup cadastra um usuário comum. Não inicia sessão.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}

	user, err := h.Accounts.Signup(c.Request.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Cadastro realizado com sucesso!", "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout realizado com sucesso."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// ChangePassword troca a senha do próprio usuário, qualquer que seja o papel.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !bindJSON(c, h.Log, &req) {
		return
	}

	user := currentUser(c)
	if err := h.Accounts.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Senha alterada com sucesso."})
}

// tokensFrom lê os tokens candidatos: primeiro o do cookie, depois o do
// cabeçalho Authorization.
func (h *AuthHandler) tokensFrom(c *gin.Context) []string {
	var toks []string
	if tok, err := c.Cookie(h.Cookie.Name); err == nil && tok != "" {
		toks = append(toks, tok)
	}
	if tok, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		if tok = strings.TrimSpace(tok); tok != "" {
			toks = append(toks, tok)
		}
	}
	return toks
}

// Authenticate resolve o usuário da requisição. O usuário é sempre relido do
// banco, então o papel vale como está gravado agora. Um cookie vencido não
// impede o uso de um Bearer válido.
func (h *AuthHandler) Authenticate(c *gin.Context) (*model.User, error) {
	toks := h.tokensFrom(c)
	if len(toks) == 0 {
		return h.Accounts.Authenticate(c.Request.Context(), "")
	}
	var lastErr error
	for _, tok := range toks {
		user, err := h.Accounts.Authenticate(c.Request.Context(), tok)
		if err == nil {
			return user, nil
		}
		if !apperr.Is(err, apperr.KindAuthentication) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func (h *AuthHandler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := h.Authenticate(c)
		if err != nil {
			respondError(c, h.Log, err)
			return
		}

		c.Set(userKey, user)
		c.Set(middleware.UserIDKey, user.ID)
		c.Next()
	}
}

// RoleRequired deixa passar somente o papel exato informado. Deve vir depois
// de AuthRequired.
func (h *AuthHandler) RoleRequired(required model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if err := auth.Authorize(user, required); err != nil {
			if user != nil {
				h.Log.WithFields(logrus.Fields{
					"user_id":  user.ID,
					"role":     user.Role,
					"required": required,
				}).Warn("acesso negado")
			}
			respondError(c, h.Log, err)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}
