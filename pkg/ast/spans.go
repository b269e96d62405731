package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// At returns a span anchored at a single source position.
func At(line, column int) Span {
	pos := Position{Line: line, Column: column}
	return Span{Start: pos, End: pos}
}

// Extend returns span widened to finish where other ends.
func (s Span) Extend(other Span) Span {
	if other.End.Line > s.End.Line || (other.End.Line == s.End.Line && other.End.Column > s.End.Column) {
		s.End = other.End
	}
	return s
}
