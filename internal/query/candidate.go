package query

// Kind classifies a candidate and decides what committing it does
type Kind int

const (
	KindBookmark Kind = iota
	KindConfigLink
	KindColorsLink
	KindCommand
	KindCommandCompletion
	KindFinder
	KindFinderCompletion
	KindFuzzy
)

func (k Kind) String() string {
	switch k {
	case KindBookmark:
		return "bookmark"
	case KindConfigLink:
		return "config-link"
	case KindColorsLink:
		return "colors-link"
	case KindCommand:
		return "command"
	case KindCommandCompletion:
		return "command-completion"
	case KindFinder:
		return "finder"
	case KindFinderCompletion:
		return "finder-completion"
	case KindFuzzy:
		return "fuzzy"
	default:
		return "unknown"
	}
}

// IsCompletion reports whether committing the kind rewrites the buffer
// instead of performing an action.
func (k Kind) IsCompletion() bool {
	return k == KindCommandCompletion || k == KindFinderCompletion
}

// Span marks the matched part of a display name, in runes
type Span struct {
	Start  int
	Length int
}

// Candidate is one selectable row of the overlay
type Candidate struct {
	DisplayName   string
	ShortcutLabel string
	// Detail is secondary text such as a URL or a command description
	Detail string
	Kind   Kind
	Match  Span

	// Completion is the buffer a completion candidate rewrites to
	Completion string
	// Action runs when a non-completion candidate is committed
	Action func() Outcome
}

// Confirmation is a destructive step waiting for yes or no
type Confirmation struct {
	// Command is the command name the confirmation belongs to. It stays
	// pending only while the buffer still addresses that command.
	Command string
	Subject string
	Apply   func()
}

// Outcome tells the interpreter what to do after an action ran
type Outcome struct {
	stay    bool
	confirm *Confirmation
}

// Done closes the overlay and resets the buffer
func Done() Outcome {
	return Outcome{}
}

// Stay keeps the overlay open and re-resolves the buffer
func Stay() Outcome {
	return Outcome{stay: true}
}

// AwaitConfirmation keeps the overlay open and switches the current command
// to a yes/no prompt.
func AwaitConfirmation(c Confirmation) Outcome {
	return Outcome{stay: true, confirm: &c}
}
