// api/models/validators.go
package models

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/missiondb/mission-dashboard/internal/core"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request structs
// to gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("date", validateDate)
	})
}

// validateDate accepts blanks (presence is the job of "required") and anything core.ParseDate accepts.
func validateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return strings.TrimSpace(s) == "" || core.IsValidDate(s)
}
