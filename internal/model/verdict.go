package model

import "encoding/json"

// Verdict is a tri-state check outcome. Indeterminate means the requirement
// does not apply or the data needed to decide is unavailable; it never fails
// an evaluation on its own.
type Verdict int

const (
	VerdictIndeterminate Verdict = iota
	VerdictPass
	VerdictFail
)

var verdictNames = [...]string{"indeterminate", "pass", "fail"}

func (v Verdict) String() string {
	if int(v) < len(verdictNames) {
		return verdictNames[v]
	}
	return "unknown"
}

// MarshalJSON encodes a Verdict as true/false/null, matching the wire shape
// consumed by form-layer clients.
func (v Verdict) MarshalJSON() ([]byte, error) {
	switch v {
	case VerdictPass:
		return json.Marshal(true)
	case VerdictFail:
		return json.Marshal(false)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler, accepting true/false/null.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	switch {
	case b == nil:
		*v = VerdictIndeterminate
	case *b:
		*v = VerdictPass
	default:
		*v = VerdictFail
	}
	return nil
}

// AllPass reports whether no verdict in the set is an explicit failure.
// Indeterminate counts as "cannot refute", not as a failure.
func AllPass(verdicts ...Verdict) bool {
	for _, v := range verdicts {
		if v == VerdictFail {
			return false
		}
	}
	return true
}
