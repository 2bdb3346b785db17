package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownChecklist indicates no checklist is registered under the
	// requested ID.
	ErrUnknownChecklist = errors.New("unknown checklist")

	// ErrUnknownVersion indicates the checklist exists but not at the
	// requested version.
	ErrUnknownVersion = errors.New("unknown checklist version")

	// ErrNoMigration indicates no direct migration edge exists between the
	// requested checklist versions. Multi-hop paths are not resolved.
	ErrNoMigration = errors.New("no migration available between versions")

	// ErrInvalidChecklist indicates a checklist definition failed structural
	// validation and was not registered.
	ErrInvalidChecklist = errors.New("invalid checklist definition")

	// ErrInvalidLogic indicates a logic expression uses an unknown node
	// shape. This is a defect in the checklist, caught at compile time.
	ErrInvalidLogic = errors.New("invalid logic expression")

	// Document errors.

	// ErrMissingBodyPart indicates the document package has no body part.
	ErrMissingBodyPart = errors.New("document is missing its body part")

	// ErrMacroContent indicates the document contains macro content and
	// must be refused rather than processed.
	ErrMacroContent = errors.New("macro-enabled documents are not supported")

	// ErrNotZipPackage indicates the bytes are not a readable package.
	ErrNotZipPackage = errors.New("document is not a readable package")
)
