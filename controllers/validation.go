package controllers

import (
	"admissions-intake-api/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("formfield", func(fl validator.FieldLevel) bool {
		return models.IsFormField(fl.Field().String())
	})
}
