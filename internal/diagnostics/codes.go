package diagnostics

// ErrorCode is a stable identifier for one failure kind, usable by
// downstream tooling to match diagnostics without parsing messages.
type ErrorCode string

const (
	ErrNoTypeFound                        ErrorCode = "TG001"
	ErrNoSuperclassFound                  ErrorCode = "TG002"
	ErrNoSelfTypeFound                    ErrorCode = "TG003"
	ErrNoMixinFound                       ErrorCode = "TG004"
	ErrRecursiveAncestor                  ErrorCode = "TG005"
	ErrInvalidTypeApplication             ErrorCode = "TG006"
	ErrInvalidVarianceAnnotation          ErrorCode = "TG007"
	ErrSuperclassMismatch                 ErrorCode = "TG008"
	ErrGenericParameterMismatch           ErrorCode = "TG009"
	ErrDuplicatedDeclaration              ErrorCode = "TG010"
	ErrDuplicatedMethodDefinition         ErrorCode = "TG011"
	ErrDuplicatedInterfaceMethodDefinition ErrorCode = "TG012"
	ErrInvalidOverloadMethod              ErrorCode = "TG013"
	ErrUnknownMethodAlias                 ErrorCode = "TG014"
	ErrRecursiveAliasDefinition           ErrorCode = "TG015"

	// Ambient, non-core failures (corpus ingestion).
	ErrMalformedCorpus ErrorCode = "TG100"
)
