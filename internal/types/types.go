package types

import "go/token"

// Severity is the reporting level of an issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// MarshalYAML implements the yaml.Marshaler interface.
func (s Severity) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (s *Severity) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch raw {
	case "ERROR":
		*s = SeverityError
	case "WARNING":
		*s = SeverityWarning
	case "INFO":
		*s = SeverityInfo
	case "OFF":
		*s = SeverityOff
	default:
		*s = SeverityWarning
	}
	return nil
}

// FixKind distinguishes the two auto-fix strategies.
type FixKind int

const (
	// FixReplace replaces the offending expression with simplified text.
	FixReplace FixKind = iota
	// FixDelete removes the enclosing statement outright.
	FixDelete
)

// Fix describes a concrete, offset-addressed program edit for an issue.
// Offsets are byte offsets into the original file content.
type Fix struct {
	Kind FixKind

	// Start and End delimit the range to replace (FixReplace) or
	// delete (FixDelete).
	Start int
	End   int

	// Replacement is the simplified expression text (FixReplace only).
	Replacement string

	// Hoisted holds side-effecting sub-expressions, in source order,
	// that must become standalone statements before the anchor so the
	// fold does not drop their effects.
	Hoisted []string

	// Comments holds comments inside the replaced range that the
	// replacement text does not carry. They are reattached on their own
	// lines before the anchor so the edit does not destroy them.
	Comments []string

	// Anchor is the byte offset of the enclosing statement; hoisted
	// statements and preserved comments are inserted immediately
	// before it.
	Anchor int
}

// Issue represents a lint issue found in the code base.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Message    string
	Suggestion string
	Note       string
	Start      token.Position
	End        token.Position
	Severity   Severity
	Confidence float64
	Fix        *Fix
}

// ConfigRule holds per-rule settings from the configuration file.
type ConfigRule struct {
	Severity        Severity `yaml:"severity"`
	Confidence      float64  `yaml:"confidence,omitempty"`
	IgnoreConstants *bool    `yaml:"ignore-constants,omitempty"`
}
