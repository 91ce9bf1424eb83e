// Package validation registers the custom binding rules used by request models.
package validation

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var rules = map[string]validator.Func{
	// isodate YYYY-MM-DD calendar date
	"isodate": layoutRule("2006-01-02"),
	// yearmonth YYYY-MM
	"yearmonth": layoutRule("2006-01"),
	// clock HH:MM on a 24 hour clock
	"clock": layoutRule("15:04"),
}

func layoutRule(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true // required decides emptiness
		}
		_, err := time.Parse(layout, s)
		return err == nil && len(s) == len(layout)
	}
}

// Register installs the rules into v.
func Register(v *validator.Validate) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

// RegisterGin installs the rules into gin's default validator.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
