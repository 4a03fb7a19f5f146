package tracking

import (
	"errors"
	"sync"

	"github.com/dinerozz/parts-analytics-backend/internal/entity"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the eventtype tag to gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("eventtype", func(fl validator.FieldLevel) bool {
				return entity.IsValidEventType(fl.Field().String())
			})
		}
	})
}

// bindError turns a binding failure into the error the client sees.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return entity.ErrValidation
	}
	for _, fe := range verrs {
		if fe.Tag() == "eventtype" {
			return entity.ErrInvalidEventType
		}
	}
	return entity.ErrValidation
}
