package domain

// Ref points at another entity across the two identifier spaces a
// schedule passes through: human-chosen codes while a skeleton has no
// durable identity, and storage identifiers once persisted. A Ref with
// an empty ID is unresolved and carries only the code; resolution never
// drops the code, so an unresolved reference stays reportable.
type Ref struct {
	ID   string
	Code string
}

// ByCode returns an unresolved reference carrying only a code.
func ByCode(code string) Ref {
	return Ref{Code: code}
}

// ByID returns a resolved reference. The code is kept for display.
func ByID(id, code string) Ref {
	return Ref{ID: id, Code: code}
}

// IsResolved reports whether the reference carries a durable identifier.
func (r Ref) IsResolved() bool {
	return r.ID != ""
}

// Key returns the identifier when resolved, otherwise the code.
func (r Ref) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Code
}
