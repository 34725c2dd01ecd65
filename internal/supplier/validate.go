package supplier

import "github.com/yuditriaji/chefstock/pkg/validate"

// NewSupplier returns the blank add-supplier form.
func NewSupplier() Supplier {
	return Supplier{Status: StatusActive}
}

func ValidateSupplier(s Supplier) error {
	var errs validate.Errors
	if !validate.NotEmpty(s.Name) {
		errs.Add("name", "is required")
	}
	if !validate.NotEmpty(s.ContactPerson) {
		errs.Add("contact_person", "is required")
	}
	if !validate.NotEmpty(s.Email) {
		errs.Add("email", "is required")
	} else if _, ok := validate.Email(s.Email); !ok {
		errs.Add("email", "is not a valid email address")
	}
	if !validate.NotEmpty(s.Phone) {
		errs.Add("phone", "is required")
	}
	if s.Rating < 0 || s.Rating > 5 {
		errs.Add("rating", "must be between 0 and 5")
	}
	return errs.Err()
}
