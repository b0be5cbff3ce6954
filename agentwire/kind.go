package agentwire

import "fmt"

// Kind identifies an agent backend. The set of kinds is open: any
// lowercase identifier matching ^[a-z][a-z0-9_]*$ is a valid kind, and
// backends register under their kind at runtime. Kinds are compared by
// value.
type Kind string

// ParseKind validates s and returns it as a Kind.
// Malformed identities yield *InvalidKindError.
func ParseKind(s string) (Kind, error) {
	if !validKind(s) {
		return "", &InvalidKindError{Value: s}
	}
	return Kind(s), nil
}

// MustKind is like ParseKind but panics on invalid input. It is intended
// for package-level kind constants in backend packages.
func MustKind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		panic(fmt.Sprintf("agentwire: invalid kind %q", s))
	}
	return k
}

// String returns the kind identifier.
func (k Kind) String() string { return string(k) }

// validKind reports whether s matches ^[a-z][a-z0-9_]*$.
func validKind(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range []byte(s) {
		switch {
		case c >= 'a' && c <= 'z':
		case i > 0 && (c == '_' || (c >= '0' && c <= '9')):
		default:
			return false
		}
	}
	return true
}
