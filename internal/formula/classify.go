// internal/formula/classify.go
package formula

// ModuleIndex is what the classifier needs to know about modules
type ModuleIndex interface {
	Resolve(token string) (ModuleRecord, bool)
	Match(fragment string) []ModuleRecord
}

// Classification is the outcome of scanning the text before the caret.
// Module contexts are complete; field and snippet contexts still need
// candidates from the directory or the fetcher.
type Classification struct {
	Kind    Kind
	Span    Span
	Token   string
	Module  ModuleRecord   // resolved module of a field context
	Modules []ModuleRecord // matches of a module context
	Err     error          // module resolution failure
}

// Classify derives the suggestion context from scratch. Guards run in
// precedence order: field, module, if/else, operator, function. Arithmetic
// characters are operator triggers, so a trailing "+" shows the operator list.
func Classify(buf Buffer, idx ModuleIndex) Classification {
	buf = buf.Normalize()
	before := buf.Before()
	caret := len(before)

	if qualifier, start, ok := scanField(before); ok {
		mod, found := idx.Resolve(qualifier)
		if !found {
			return Classification{Err: &ModuleNotFoundError{Token: qualifier}}
		}
		return Classification{
			Kind:   KindField,
			Span:   Span{Start: start, End: caret},
			Token:  before[start:],
			Module: mod,
		}
	}

	if start, ok := scanIdent(before); ok {
		if mods := idx.Match(before[start:]); len(mods) > 0 {
			return Classification{
				Kind:    KindModule,
				Span:    Span{Start: start, End: caret},
				Token:   before[start:],
				Modules: mods,
			}
		}
	}

	snippet := func(kind Kind, start int) Classification {
		return Classification{Kind: kind, Span: Span{Start: start, End: caret}, Token: before[start:]}
	}
	if start, ok := scanIf(before); ok {
		return snippet(KindIfElse, start)
	}
	if start, ok := scanOperator(before); ok {
		return snippet(KindOperator, start)
	}
	if start, ok := scanAlpha(before); ok {
		return snippet(KindFunction, start)
	}
	return Classification{}
}

// filterFields keeps fields starting with partial, case-insensitively
func filterFields(fields []string, partial string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if hasPrefixFold(f, partial) {
			out = append(out, f)
		}
	}
	return out
}
