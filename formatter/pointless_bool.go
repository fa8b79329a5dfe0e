package formatter

// PointlessBoolFormatter renders pointless boolean expression issues.
// On top of the general layout it lists the side-effecting operands
// the auto-fix would hoist into their own statements.
type PointlessBoolFormatter struct{}

func (f *PointlessBoolFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}

{{- if .Hoisted }}
{{hoisted .Hoisted .Padding}}
{{- end }}

{{- if .Suggestion }}
{{suggestion .Suggestion .Padding .MaxLineNumWidth .StartLine}}
{{- end }}

{{- if .Note }}
{{note .Note}}
{{- end }}
`
}
