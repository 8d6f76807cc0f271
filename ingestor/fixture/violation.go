package fixture

import (
	"fmt"
)

// ViolationKind tags which family of rule a violation belongs to.
type ViolationKind string

const (
	// FileFormat covers malformed row content, like a empty field or a bad date.
	FileFormat ViolationKind = "FILE_FORMAT"
	// BusinessRule covers content that conflicts with the season state.
	BusinessRule ViolationKind = "BUSINESS_RULE"
	// DataIntegrity covers conflicts between rows of the same upload.
	DataIntegrity ViolationKind = "DATA_INTEGRITY"
)

// Violation is a single rejected check, always returned as a value and never raised.
type Violation struct {
	Kind      ViolationKind
	Message   string
	Line      int
	Column    string
	GradeCode string
}

// String formats the violation the way it shows up on the processing report.
func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", v.Line, v.Kind, v.Message)
	}
	return fmt.Sprintf("%s: %s", v.Kind, v.Message)
}

// NewFileFormatViolation creates a file format violation for a given line and column.
func NewFileFormatViolation(line int, column string, format string, args ...any) Violation {
	return Violation{
		Kind:    FileFormat,
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// NewBusinessRuleViolation creates a business rule violation for a given line and grade.
func NewBusinessRuleViolation(line int, gradeCode string, format string, args ...any) Violation {
	return Violation{
		Kind:      BusinessRule,
		Message:   fmt.Sprintf(format, args...),
		Line:      line,
		GradeCode: gradeCode,
	}
}

// NewDataIntegrityViolation creates a cross row violation for a given line and grade.
func NewDataIntegrityViolation(line int, gradeCode string, format string, args ...any) Violation {
	return Violation{
		Kind:      DataIntegrity,
		Message:   fmt.Sprintf(format, args...),
		Line:      line,
		GradeCode: gradeCode,
	}
}
