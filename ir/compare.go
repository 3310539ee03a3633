package ir

// EqualTyped is like Equal but also requires every pair of corresponding
// values to have the same type.
func EqualTyped(a, b Element) bool {
	if a.Type() != b.Type() || a.Len() != b.Len() {
		return false
	}
	if a.Type().IsLeaf() {
		return Identical(a.Value(), b.Value())
	}
	for i := range a.Len() {
		ca, cb := a.Child(i), b.Child(i)
		if a.Type() == ObjectType && ca.FieldName() != cb.FieldName() {
			return false
		}
		if !EqualTyped(ca, cb) {
			return false
		}
	}
	return true
}
