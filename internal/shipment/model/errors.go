package model

import "errors"

var (
	ErrShipmentNotFound      = errors.New("shipment not found")
	ErrShipmentAlreadyExists = errors.New("shipment already exists")
	ErrCustomTaskNotFound    = errors.New("custom task not found")
	ErrTodoItemNotFound      = errors.New("checklist item not found")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrContactNotFound       = errors.New("contact not found")
	ErrNoteNotFound          = errors.New("note not found")
	ErrInvalidParameter      = errors.New("invalid parameter") // base error for request validation failures
)
