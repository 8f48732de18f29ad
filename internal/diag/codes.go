package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Структурные (парсер)
	SynInfo                    Code = 2000
	SynUnrecognizedSyntax      Code = 2001
	SynUnbalancedBlock         Code = 2002
	SynUnclosedBlock           Code = 2003
	SynMissingReturn           Code = 2004
	SynStatementNotAllowedHere Code = 2005
	SynNestedMethodDeclaration Code = 2006
	SynDuplicateMethodName     Code = 2007
	SynDuplicateParameterName  Code = 2008
	SynReservedName            Code = 2009
	SynUnknownType             Code = 2010

	// Семантические (валидатор)
	SemaInfo                           Code = 3000
	SemaUndeclaredVariable             Code = 3001
	SemaUnknownOrUninitializedVariable Code = 3002
	SemaFinalReassignment              Code = 3003
	SemaIncompatibleDeclaration        Code = 3004
	SemaIncompatibleAssignment         Code = 3005
	SemaDuplicateDeclaration           Code = 3006
	SemaFinalNotInitialized            Code = 3007
	SemaMethodNotFound                 Code = 3008
	SemaArgumentCountMismatch          Code = 3009
	SemaArgumentTypeMismatch           Code = 3010
	SemaInvalidConditionType           Code = 3011

	// I/O
	IOLoadFileError Code = 4001
	IOBadSuffix     Code = 4002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                        "Unknown error",
		SynInfo:                            "Syntax information",
		SynUnrecognizedSyntax:              "Unrecognized syntax",
		SynUnbalancedBlock:                 "Closing brace without an open block",
		SynUnclosedBlock:                   "Block not closed before end of file",
		SynMissingReturn:                   "Method body must end with return",
		SynStatementNotAllowedHere:         "Statement not allowed in this scope",
		SynNestedMethodDeclaration:         "Method declared inside another block",
		SynDuplicateMethodName:             "Duplicate method name",
		SynDuplicateParameterName:          "Duplicate parameter name",
		SynReservedName:                    "Reserved word used as a name",
		SynUnknownType:                     "Unknown type",
		SemaInfo:                           "Semantic information",
		SemaUndeclaredVariable:             "Assignment to undeclared variable",
		SemaUnknownOrUninitializedVariable: "Variable is unknown or uninitialized",
		SemaFinalReassignment:              "Final variable reassigned",
		SemaIncompatibleDeclaration:        "Initializer type is incompatible with declaration",
		SemaIncompatibleAssignment:         "Assigned value type is incompatible",
		SemaDuplicateDeclaration:           "Variable already declared in this scope",
		SemaFinalNotInitialized:            "Final variable declared without a value",
		SemaMethodNotFound:                 "Call to unknown method",
		SemaArgumentCountMismatch:          "Wrong number of call arguments",
		SemaArgumentTypeMismatch:           "Call argument type is incompatible",
		SemaInvalidConditionType:           "Condition term is not numeric or boolean",
		IOLoadFileError:                    "I/O load file error",
		IOBadSuffix:                        "Source file has the wrong suffix",
		ObsInfo:                            "Observability information",
		ObsTimings:                         "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Phase groups codes by the stage that produces them.
type Phase uint8

const (
	PhaseUnknown Phase = iota
	PhaseSyntax
	PhaseSemantic
	PhaseIO
	PhaseObserv
)

func (p Phase) String() string {
	switch p {
	case PhaseSyntax:
		return "syntax"
	case PhaseSemantic:
		return "semantic"
	case PhaseIO:
		return "io"
	case PhaseObserv:
		return "observ"
	}
	return "unknown"
}

// ExitCode is the process status a failure in phase p maps to: 1 for
// s-Java errors, 2 for files that could not be read.
func (p Phase) ExitCode() int {
	switch p {
	case PhaseSyntax, PhaseSemantic:
		return 1
	case PhaseIO:
		return 2
	}
	return 0
}

func (c Code) Phase() Phase {
	switch ic := int(c); {
	case ic >= 2000 && ic < 3000:
		return PhaseSyntax
	case ic >= 3000 && ic < 4000:
		return PhaseSemantic
	case ic >= 4000 && ic < 5000:
		return PhaseIO
	case ic >= 6000 && ic < 7000:
		return PhaseObserv
	}
	return PhaseUnknown
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
