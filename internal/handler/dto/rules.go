package dto

import (
	"strings"

	"github.com/jellydator/validation"
)

// notBlank rejects strings made only of whitespace. Nil and empty values
// pass; pair it with Required where presence matters.
func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		v, isNil := validation.Indirect(value)
		s, ok := v.(string)
		if isNil || !ok || s == "" {
			return nil
		}
		if strings.TrimSpace(s) == "" {
			return validation.NewError("validation_blank", message)
		}
		return nil
	}
}
