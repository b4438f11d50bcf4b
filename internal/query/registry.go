package query

import (
	"strings"
)

// Handler produces candidates for one command from its argument tokens
type Handler interface {
	Name() string
	Description() string
	Candidates(args []string) []Candidate
}

// CommandRegistry is a static table of command handlers keyed by name.
// Registration order is the listing order.
type CommandRegistry struct {
	order  []Handler
	byName map[string]Handler
}

// NewCommandRegistry creates a registry holding handlers
func NewCommandRegistry(handlers ...Handler) *CommandRegistry {
	r := &CommandRegistry{byName: make(map[string]Handler)}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// Register adds h, replacing any handler with the same name in place
func (r *CommandRegistry) Register(h Handler) {
	name := strings.ToLower(h.Name())
	if _, exists := r.byName[name]; exists {
		for i, existing := range r.order {
			if strings.ToLower(existing.Name()) == name {
				r.order[i] = h
			}
		}
	} else {
		r.order = append(r.order, h)
	}
	r.byName[name] = h
}

// Lookup returns the handler registered under name
func (r *CommandRegistry) Lookup(name string) (Handler, bool) {
	h, ok := r.byName[strings.ToLower(name)]
	return h, ok
}

// Names lists command names in registration order
func (r *CommandRegistry) Names() []string {
	names := make([]string, len(r.order))
	for i, h := range r.order {
		names[i] = strings.ToLower(h.Name())
	}
	return names
}

// Complete returns the single command name starting with partial, if
// exactly one does.
func (r *CommandRegistry) Complete(partial string) (string, bool) {
	var found string
	n := 0
	for _, name := range r.Names() {
		if strings.HasPrefix(name, strings.ToLower(partial)) {
			found = name
			n++
		}
	}
	return found, n == 1
}

// Resolve turns the buffer after the command marker into candidates.
//
// A bare marker or a partial name yields completion candidates. An exact
// name dispatches to its handler with the whitespace-split arguments. An
// unknown name followed by a space yields nothing.
func (r *CommandRegistry) Resolve(rest string) []Candidate {
	name, args, spaced := splitCommand(rest)

	if !spaced {
		if h, ok := r.Lookup(name); ok && name != "" {
			return h.Candidates(nil)
		}
		return r.completions(name)
	}

	h, ok := r.Lookup(name)
	if !ok {
		return nil
	}
	return h.Candidates(args)
}

func (r *CommandRegistry) completions(prefix string) []Candidate {
	prefix = strings.ToLower(prefix)

	var out []Candidate
	for _, h := range r.order {
		name := strings.ToLower(h.Name())
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		out = append(out, Candidate{
			DisplayName:   name,
			ShortcutLabel: string(MarkerCommand) + name,
			Detail:        h.Description(),
			Kind:          KindCommandCompletion,
			Match:         Span{Start: 0, Length: len([]rune(prefix))},
			Completion:    string(MarkerCommand) + name + " ",
		})
	}
	return out
}

// splitCommand separates the command name from its arguments. An
// argument list made only of whitespace is normalized to no arguments.
func splitCommand(rest string) (name string, args []string, spaced bool) {
	space := strings.IndexByte(rest, ' ')
	if space < 0 {
		return strings.ToLower(rest), nil, false
	}
	return strings.ToLower(rest[:space]), strings.Fields(rest[space+1:]), true
}
