package handler

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// passwordSpecials são os caracteres aceitos como "especiais" na senha.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

var registerOnce sync.Once

// RegisterValidators adiciona as regras próprias ao validador do gin.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("password", validPassword)
		_ = v.RegisterValidation("notblank", notBlank)
	})
}

// validPassword exige ao menos uma letra maiúscula e um caractere especial.
// O tamanho é conferido pelas tags min/max.
func validPassword(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	var upper, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && special
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

var fieldLabels = map[string]string{
	"Name":            "Nome",
	"Email":           "E-mail",
	"Password":        "Senha",
	"Address":         "Endereço",
	"Role":            "Papel",
	"CurrentPassword": "Senha atual",
	"NewPassword":     "Nova senha",
	"StoreID":         "Loja",
	"Rating":          "Nota",
	"OwnerName":       "Nome do dono",
	"OwnerPassword":   "Senha do dono",
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s é obrigatório.", label)
	case "email":
		return "E-mail inválido."
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s deve ter no mínimo %s caracteres.", label, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s.", label, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres.", label, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s.", label, fe.Param())
	case "password":
		return fmt.Sprintf("%s deve conter ao menos uma letra maiúscula e um caractere especial.", label)
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s.", label, fe.Param())
	}
	return fmt.Sprintf("%s inválido.", label)
}
