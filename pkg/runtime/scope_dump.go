package runtime

import (
	"io"
	"strings"
)

const dumpSeparator = "-----------------------------------"

// Dump writes the scope and all of its descendants in the debug table format.
func (s *Scope) Dump(w io.Writer) error {
	var b strings.Builder
	s.dumpInto(&b)
	_, err := io.WriteString(w, b.String())
	return err
}

func (s *Scope) dumpInto(b *strings.Builder) {
	b.WriteString("Scope: ")
	b.WriteString(s.Name())
	b.WriteByte('\n')
	for _, name := range s.Names() {
		binding := s.bindings[name]
		b.WriteString("  Name: ")
		b.WriteString(binding.Name)
		b.WriteString(" | Type: ")
		b.WriteString(binding.Type)
		b.WriteString(" | Cat: ")
		b.WriteString(string(binding.Category))
		switch binding.Category {
		case CategoryVar:
			if text, ok := Format(binding.Value); ok {
				b.WriteString(" | Val: ")
				b.WriteString(text)
			}
		case CategoryFunc:
			b.WriteString(" | Params: (")
			for i, typ := range binding.ParamTypes {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(typ)
				b.WriteByte(' ')
				if i < len(binding.ParamNames) {
					b.WriteString(binding.ParamNames[i])
				}
			}
			b.WriteByte(')')
		}
		b.WriteByte('\n')
	}
	b.WriteString(dumpSeparator)
	b.WriteByte('\n')
	for _, child := range s.children {
		child.dumpInto(b)
	}
}
