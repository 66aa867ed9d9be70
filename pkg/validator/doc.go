// Package validator provides small composable validation rules.
//
// Rules are built eagerly and evaluated in order by First, which stops at the
// first failure:
//
//	err := validator.First(
//	    validator.WithMessage(validator.RequiredString("name", in.Name), "Name is required"),
//	    validator.WithMessage(validator.MaxLenString("name", in.Name, 100), "Name must be less than 100 characters"),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//	    first, _ := ve.First()
//	    return first.Message
//	}
//
// Every ValidationErrors value matches ErrValidation with errors.Is. Each error
// carries the failed rule's Code and its Params for logging.
package validator
