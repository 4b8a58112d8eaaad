// Package diag is the checker's error taxonomy and reporter, generalizing
// the teacher's internal/errors package (CompilerError + codes.go) from
// compiler semantic errors to the certificate error kinds of the
// verifier and reorderer.
package diag

import "fmt"

// Kind identifies one of the error taxonomy entries.
type Kind string

const (
	KindParseError             Kind = "ParseError"
	KindVersionUnsupported     Kind = "VersionUnsupported"
	KindSolutionViolation      Kind = "SolutionViolation"
	KindDerivationInvalid      Kind = "DerivationInvalid"
	KindUseAfterTrash          Kind = "UseAfterTrash"
	KindUndischargedAssumption Kind = "UndischargedAssumption"
	KindCycle                  Kind = "Cycle"
)

// Code ranges mirror the teacher's E00xx convention, one range per kind.
const (
	CodeParseError             = "V0001"
	CodeVersionUnsupported     = "V0100"
	CodeSolutionViolation      = "V0200"
	CodeDerivationInvalid      = "V0300"
	CodeUseAfterTrash          = "V0400"
	CodeUndischargedAssumption = "V0401"
	CodeCycle                  = "V0500"
)

// Error is a taxonomized, fatal checker error: every error raised during
// verification or reordering is one of these, detected at the point of
// failure with no local recovery (spec §7).
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Label/Index identify the offending certificate entity, when known.
	Label string
	Index int
}

func (e *Error) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("[%s] %s: %s (%s)", e.Code, e.Kind, e.Message, e.Label)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Kind, e.Message)
}

func newErr(kind Kind, code, label string, index int, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...), Label: label, Index: index}
}

func ParseError(label string, format string, args ...any) *Error {
	return newErr(KindParseError, CodeParseError, label, -1, format, args...)
}

func VersionUnsupported(version string) *Error {
	return newErr(KindVersionUnsupported, CodeVersionUnsupported, "", -1, "certificate format version %s is unsupported", version)
}

func SolutionViolation(label string, format string, args ...any) *Error {
	return newErr(KindSolutionViolation, CodeSolutionViolation, label, -1, format, args...)
}

func DerivationInvalid(label string, format string, args ...any) *Error {
	return newErr(KindDerivationInvalid, CodeDerivationInvalid, label, -1, format, args...)
}

func UseAfterTrash(label string, index int) *Error {
	return newErr(KindUseAfterTrash, CodeUseAfterTrash, label, index, "referenced constraint %d (%s) after it was trashed", index, label)
}

func UndischargedAssumption(indices []int) *Error {
	return newErr(KindUndischargedAssumption, CodeUndischargedAssumption, "", -1, "final derivation has undischarged assumptions: %v", indices)
}

func Cycle(index int) *Error {
	return newErr(KindCycle, CodeCycle, "", index, "reference graph contains a cycle at derivation index %d", index)
}
