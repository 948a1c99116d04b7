// Package services contains stateless domain services for the stuff bounded
// context: the pure validation rules shared by the create and update paths.
// They operate purely on domain types, accumulate every violation instead of
// failing fast, and have zero dependencies beyond stdlib and the domain layer.
package services

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ghuser/stuffkeeper/services/stuff/domain"
	"github.com/ghuser/stuffkeeper/services/stuff/domain/models"
)

// Violation messages follow the wording clients already display.
const (
	MsgBlank            = "can't be blank"
	MsgQuantityTooSmall = "must be greater than or equal to 0"
	MsgQuantityTooLarge = "must be less than 1000000"
	MsgUnitNotAllowed   = "is not included in the list"
	MsgUnitWithoutQty   = "must be blank when quantity is absent"
	MsgColorCodeInvalid = "is invalid"
)

var (
	maxQuantity      = decimal.NewFromInt(1_000_000)
	colorCodePattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

// ValidateName fails when the name is empty or whitespace-only. The same
// rule applies to stuff and tag names.
func ValidateName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// ValidateQuantity checks the half-open range [0, 1000000). A nil quantity
// is always valid. Returns the violation message, or "" when valid.
func ValidateQuantity(q *decimal.Decimal) string {
	switch {
	case q == nil:
		return ""
	case q.IsNegative():
		return MsgQuantityTooSmall
	case q.GreaterThanOrEqual(maxQuantity):
		return MsgQuantityTooLarge
	}
	return ""
}

// ValidateColorCode checks the strict 6-hex-digit #RRGGBB form. An empty
// code is valid (the field is optional); the 3-digit shorthand is not.
func ValidateColorCode(code string) bool {
	return code == "" || colorCodePattern.MatchString(code)
}

// ValidateStuff evaluates all stuff field rules and returns the accumulated
// violations. An empty map means the fields are acceptable.
//
// Rules:
//   - name must be present
//   - quantity, when present, must be in [0, 1000000)
//   - quantity and unit are jointly present or jointly absent
//   - unit, when present, must belong to the allowed unit set
func ValidateStuff(fields models.StuffFields) domain.Violations {
	v := domain.NewViolations()

	if !ValidateName(fields.Name) {
		v.Add("name", MsgBlank)
	}

	if msg := ValidateQuantity(fields.Quantity); msg != "" {
		v.Add("quantity", msg)
	}

	switch {
	case fields.Quantity != nil && fields.Unit.Blank():
		v.Add("unit", MsgBlank)
	case fields.Quantity == nil && !fields.Unit.Blank():
		v.Add("unit", MsgUnitWithoutQty)
	case !fields.Unit.Blank() && !fields.Unit.Allowed():
		v.Add("unit", MsgUnitNotAllowed)
	}

	return v
}

// ValidateTag evaluates all tag field rules and returns the accumulated
// violations.
func ValidateTag(fields models.TagFields) domain.Violations {
	v := domain.NewViolations()

	if !ValidateName(fields.Name) {
		v.Add("name", MsgBlank)
	}
	if !ValidateColorCode(fields.ColorCode) {
		v.Add("color_code", MsgColorCodeInvalid)
	}

	return v
}
