package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	pkgerrors "pptq-absensi/pkg/errors"
	"pptq-absensi/pkg/validation"
)

// modelValidator checks models against the same binding tags gin enforces
// on HTTP input, for payloads that arrive another way (store protocol, spreadsheets).
type modelValidator struct {
	v *validator.Validate
}

func newModelValidator() *modelValidator {
	v := validator.New()
	v.SetTagName("binding")
	if err := validation.Register(v); err != nil {
		panic(err)
	}
	return &modelValidator{v: v}
}

func (m *modelValidator) check(item interface{}) error {
	if err := m.v.Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: field %s failed %s", pkgerrors.ErrValidation, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", pkgerrors.ErrValidation, err)
	}
	return nil
}
