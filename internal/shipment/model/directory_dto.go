package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateContactRequest requires a name on create; updates may omit it but not blank it.
func ValidateContactRequest(req ContactRequest, create bool) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, nameRules(create)...),
		validation.Field(&req.Details, validation.Length(0, 4000)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err.Error())
	}
	return nil
}

// ValidateNoteRequest requires a name on create; updates may omit it but not blank it.
func ValidateNoteRequest(req NoteRequest, create bool) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, nameRules(create)...),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidParameter, err.Error())
	}
	return nil
}

func nameRules(create bool) []validation.Rule {
	if create {
		return []validation.Rule{validation.Required, validation.Length(1, 255)}
	}
	return []validation.Rule{validation.NilOrNotEmpty, validation.Length(1, 255)}
}
