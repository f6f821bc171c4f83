package checkout

import (
	"regexp"

	"github.com/nicheclub/storefront/internal/models"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// FieldErrors maps form field names to a human-readable problem.
type FieldErrors map[string]string

// ValidationError blocks submission before any network call is made.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "invalid shipping details"
}

// ValidateShipping checks the checkout form: all fields required, email must
// look like an address, zip must be 5 or 9 digits.
func ValidateShipping(info models.ShippingInfo) FieldErrors {
	errs := FieldErrors{}

	if info.Name == "" {
		errs["name"] = "name is required"
	}
	if info.Email == "" {
		errs["email"] = "email is required"
	} else if !emailPattern.MatchString(info.Email) {
		errs["email"] = "email is invalid"
	}
	if info.Phone == "" {
		errs["phone"] = "phone is required"
	}
	if info.Address == "" {
		errs["address"] = "street address is required"
	}
	if info.City == "" {
		errs["city"] = "city is required"
	}
	if info.State == "" {
		errs["state"] = "state is required"
	}
	if info.Zip == "" {
		errs["zip"] = "zip code is required"
	} else if !zipPattern.MatchString(info.Zip) {
		errs["zip"] = "zip code must be 5 or 9 digits"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
