package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/middleware"
)

// respondError é o único ponto que converte erros em resposta HTTP. Erros
// internos são logados com a causa e o cliente recebe só a mensagem genérica.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithFields(logrus.Fields{
			"request_id": middleware.GetRequestID(c),
			"path":       c.Request.URL.Path,
		}).WithError(err).Error("erro interno")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperr.PublicMessage(err)})
}

// bindJSON decodifica e valida o corpo. Em caso de falha já responde 400.
func bindJSON(c *gin.Context, log *logrus.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, log, apperr.Validation(validationMessage(err)))
		return false
	}
	return true
}

// validationMessage devolve a mensagem do primeiro campo inválido.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldMessage(verrs[0])
	}
	return "Corpo da requisição inválido."
}

// paramID lê um id numérico da rota.
func paramID(c *gin.Context, name string) (uint, error) {
	id64, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id64 == 0 {
		return 0, apperr.Validation("ID inválido.")
	}
	return uint(id64), nil
}
