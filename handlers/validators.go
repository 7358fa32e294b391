package handlers

import (
	"chowline/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the dishcategory rule used by menu and
// restaurant request bindings. Called once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dishcategory", func(fl validator.FieldLevel) bool {
		return models.IsDishCategory(fl.Field().String())
	})
}
