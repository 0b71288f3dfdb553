package domain

// VerifiedField wraps a profile attribute with its admin verification flag.
// Professional profiles submit plain values; admins flip Verified one field
// at a time.
type VerifiedField struct {
	Value    string `json:"value"`
	Verified bool   `json:"verified"`
}

// VerifiedInt is a VerifiedField for numeric attributes such as years of
// experience.
type VerifiedInt struct {
	Value    int  `json:"value"`
	Verified bool `json:"verified"`
}

// verifiable is satisfied by the wrapper types so an aggregate can be
// recomputed over a mixed field set.
type verifiable interface {
	isVerified() bool
}

func (f VerifiedField) isVerified() bool { return f.Verified }
func (f VerifiedInt) isVerified() bool   { return f.Verified }

// AggregateVerified reports whether every field in the required set is
// verified. An empty set is never considered verified.
func AggregateVerified(fields ...verifiable) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !f.isVerified() {
			return false
		}
	}
	return true
}
