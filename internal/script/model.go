// Package script implements the line-oriented script language that
// selects and configures the report's scanning sections: a parser that
// turns script text into an ordered, merged set of Sections, and a
// Registry of the SectionDefinitions a parse run validates command tokens
// against.
package script

import (
	"strings"

	"github.com/billyoneal/instalog-go/internal/logsink"
)

// Handler executes a single Section against the shared sink. argument is
// the section's header-line argument; options is the accumulated,
// source-order option list (duplicates preserved).
type Handler func(sink logsink.Sink, argument string, options []string) error

// Definition is the immutable descriptor a script command token resolves
// to: the canonical (case-folded) command, the human display name used in
// the section banner, the ordering priority, and the handler invoked at
// execution time.
type Definition struct {
	Command     string // case-folded key, e.g. "runningprocesses"
	DisplayName string
	Priority    Priority
	Execute     Handler
}

// Section is one (definition, argument) binding accumulated during a
// parse: its argument, the merged option list across every duplicate
// header line that named it, and the parse index of its first occurrence.
type Section struct {
	Definition *Definition
	Argument   string
	Options    []string
	ParseIndex int
}

// Registry maps case-folded command tokens to their Definition. A parser
// run is validated against exactly one Registry.
type Registry struct {
	byCommand map[string]*Definition
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byCommand: make(map[string]*Definition)}
}

// Register adds def, keyed by its case-folded Command. Registering the
// same command twice replaces the earlier definition; callers are
// expected to build the registry once at startup from a fixed table.
func (r *Registry) Register(def *Definition) {
	r.byCommand[strings.ToLower(def.Command)] = def
}

// Lookup resolves a command token, case-insensitively.
func (r *Registry) Lookup(command string) (*Definition, bool) {
	def, ok := r.byCommand[strings.ToLower(command)]
	return def, ok
}

// Script is the parsed, merged result: every Section keyed by its
// (definition, argument) pair, in the order the parser first produced
// them. Use Ordered to obtain the executor's priority/parse-index sort.
type Script struct {
	sections []*Section
	index    map[sectionKey]*Section
}

type sectionKey struct {
	command  string
	argument string
}

func newScript() *Script {
	return &Script{index: make(map[sectionKey]*Section)}
}

// add merges opts into the Section for (def, argument), creating it (with
// parseIndex as its first-seen index) if this is the first occurrence.
func (s *Script) add(def *Definition, argument string, opts []string, parseIndex int) {
	key := sectionKey{command: def.Command, argument: argument}
	if existing, ok := s.index[key]; ok {
		existing.Options = append(existing.Options, opts...)
		return
	}
	sec := &Section{
		Definition: def,
		Argument:   argument,
		Options:    opts,
		ParseIndex: parseIndex,
	}
	s.index[key] = sec
	s.sections = append(s.sections, sec)
}

// Sections returns every merged section, in first-seen parse order.
func (s *Script) Sections() []*Section {
	return s.sections
}

// Ordered returns every section sorted by (Definition.Priority,
// ParseIndex) ascending, stably — the order the executor runs them in.
func (s *Script) Ordered() []*Section {
	out := make([]*Section, len(s.sections))
	copy(out, s.sections)
	stableSortSections(out)
	return out
}

func stableSortSections(secs []*Section) {
	// Insertion sort: the section count is small (single digits) and the
	// stability requirement is easiest to reason about explicitly here.
	for i := 1; i < len(secs); i++ {
		j := i
		for j > 0 && less(secs[j], secs[j-1]) {
			secs[j], secs[j-1] = secs[j-1], secs[j]
			j--
		}
	}
}

func less(a, b *Section) bool {
	if a.Definition.Priority != b.Definition.Priority {
		return a.Definition.Priority < b.Definition.Priority
	}
	return a.ParseIndex < b.ParseIndex
}
