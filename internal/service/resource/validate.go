package resource

import (
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/Alijeyrad/stomatology_backend/pkg/phone"
)

func init() {
	govalidator.TagMap["fullname"] = govalidator.Validator(isFullName)
	govalidator.TagMap["phone"] = govalidator.Validator(phone.IsValid)
	govalidator.TagMap["nonnegative"] = govalidator.Validator(isNonNegative)
}

// isFullName requires a surname, a given name and a patronymic.
func isFullName(s string) bool {
	return len(strings.Fields(s)) >= 3
}

func isNonNegative(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= 0
}

// validateFields runs the struct tag validators and returns the failures
// keyed by json field name.
func validateFields(rec any) map[string]string {
	fields := map[string]string{}
	if _, err := govalidator.ValidateStruct(rec); err != nil {
		for name, msg := range govalidator.ErrorsByField(err) {
			fields[name] = msg
		}
	}
	return fields
}
