package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"platelink/internal/models"
	"platelink/internal/plate"
)

var validate *validator.Validate

var referralCodeRegex = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func init() {
	validate = validator.New()

	validate.RegisterValidation("phone", validatePhone)
	validate.RegisterValidation("plate_number", validatePlateNumber)
	validate.RegisterValidation("referral_code", validateReferralCode)
	validate.RegisterValidation("wheel_category", validateWheelCategory)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationErrors flattens validator errors into a field -> message map for
// the response envelope.
func ValidationErrors(err error) map[string]string {
	errs := make(map[string]string)
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errs[fe.Field()] = "failed on " + fe.Tag() + " validation"
		}
	}
	return errs
}

func IsValidReferralCode(code string) bool {
	return referralCodeRegex.MatchString(code)
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validatePlateNumber(fl validator.FieldLevel) bool {
	return plate.IsValid(fl.Field().String())
}

func validateReferralCode(fl validator.FieldLevel) bool {
	return IsValidReferralCode(fl.Field().String())
}

func validateWheelCategory(fl validator.FieldLevel) bool {
	return models.WheelCategory(fl.Field().String()).Valid()
}
