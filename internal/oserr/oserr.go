// Package oserr defines the single error taxonomy that every OS facade in
// Instalog translates its failures into. No facade leaks a raw Win32 error
// code, NTSTATUS, or HRESULT past its own boundary; all three surfaces are
// converted here.
package oserr

import "fmt"

// Kind discriminates the category of an Error. Kind is comparable, so
// callers branch on it directly rather than parsing messages.
type Kind int

const (
	// Success is not normally constructed; it exists so a Kind zero value
	// is meaningful rather than an implicit "unset" error.
	Success Kind = iota
	FileNotFound
	PathNotFound
	AccessDenied
	AlreadyExists
	InvalidParameter
	ModuleNotFound
	ProcedureNotFound
	InvalidUtf16
	InvalidRegistryDataType
	MalformedEscapedSequence
	UnknownScriptSection
	// Other carries a raw code that did not map to any of the above.
	Other
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "Success"
	case FileNotFound:
		return "FileNotFound"
	case PathNotFound:
		return "PathNotFound"
	case AccessDenied:
		return "AccessDenied"
	case AlreadyExists:
		return "AlreadyExists"
	case InvalidParameter:
		return "InvalidParameter"
	case ModuleNotFound:
		return "ModuleNotFound"
	case ProcedureNotFound:
		return "ProcedureNotFound"
	case InvalidUtf16:
		return "InvalidUtf16"
	case InvalidRegistryDataType:
		return "InvalidRegistryDataType"
	case MalformedEscapedSequence:
		return "MalformedEscapedSequence"
	case UnknownScriptSection:
		return "UnknownScriptSection"
	default:
		return "Other"
	}
}

// Error is the one error type every facade in this repository returns. It
// wraps an optional underlying cause and, for Other, the raw code that
// produced it.
type Error struct {
	Kind    Kind
	Message string
	Raw     uint32 // raw Win32/NTSTATUS/HRESULT code, meaningful only for Other
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Kind == Other && e.Raw != 0 {
		msg = fmt.Sprintf("%s (code 0x%08X)", msg, e.Raw)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, oserr.New(SomeKind, "")) match by Kind alone,
// ignoring Message/Cause/Raw.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds an Error with no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Error that carries cause as its Unwrap() target.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// FromRaw builds an Other error carrying the untranslated native code. Use
// only at a boundary that has already checked the code against the known
// mappings in winerr.go and found no match.
func FromRaw(raw uint32, message string) *Error {
	return &Error{Kind: Other, Message: message, Raw: raw}
}

// ExitCode packs the Kind discriminant into the low byte of a process exit
// code so a caller script can branch on failure category without parsing
// output.
func ExitCode(err error) int {
	var e *Error
	if ae, ok := err.(*Error); ok {
		e = ae
	} else {
		return 1
	}
	return int(e.Kind) & 0xFF
}
