// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"spa-system/pkg/constants"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("vn_phone", isVietnamesePhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("appt_status", isAppointmentStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("photo_type", isPhotoType); err != nil {
		return err
	}
	return nil
}

func isVietnamesePhoneNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^(\+84|0)\d{9,10}$`)
	return re.MatchString(fl.Field().String())
}

func isAppointmentStatus(fl validator.FieldLevel) bool {
	return constants.IsAllowedAppointmentStatus(fl.Field().String())
}

func isPhotoType(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, t := range constants.AllowedPhotoTypes {
		if t == s {
			return true
		}
	}
	return false
}
