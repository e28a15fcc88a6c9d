package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("transport", isTransport); err != nil {
		return nil, nil, fmt.Errorf("failed to register transport validation: %w", err)
	}
	if err := validate.RegisterTranslation("transport", trans, func(ut ut.Translator) error {
		return ut.Add("transport", "{0} must be one of none, cellular, wifi or empty", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("transport", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register transport translation: %w", err)
	}

	return validate, trans, nil
}

func isTransport(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "none", "cellular", "wifi":
		return true
	default:
		return false
	}
}
