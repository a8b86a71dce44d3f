// Package repository implementa o acesso a dados sobre gorm. Os erros de
// armazenamento saem daqui já traduzidos para a taxonomia de apperr.
package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
)

// Sort indica a coluna (já validada pelo chamador) e a direção da ordenação.
type Sort struct {
	Column string
	Desc   bool
}

// apply ordena pela coluna pedida e desempata pela ordem de inserção.
func (s Sort) apply(q *gorm.DB, table string) *gorm.DB {
	if s.Column != "" {
		q = q.Order(clause.OrderByColumn{
			Column: clause.Column{Table: table, Name: s.Column},
			Desc:   s.Desc,
		})
	}
	return q.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
}

// likePattern monta um padrão LIKE de substring, em minúsculas e com os
// curingas do usuário escapados.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// translate converte erros do gorm em erros da aplicação.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.Internal(err)
}
