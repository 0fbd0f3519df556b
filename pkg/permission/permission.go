package permission

// Value is an explicit permission entry: an allow/deny decision plus
// optional sub-settings (for example UI capability flags).
type Value struct {
	Allowed  bool           `json:"allowed"`
	Settings map[string]any `json:"settings,omitempty"`
}

// Layer maps permission keys to explicit entries. A key absent from a
// layer falls through to the previous layer during the merge.
type Layer map[string]Value

// RuleSet is the full layered rule data for one user in one tenant.
type RuleSet struct {
	Tenant Layer
	Role   Layer
	User   Layer
}

// Merge resolves a rule set into the effective per-key view. Layers apply
// in the fixed order tenant, role, user; each explicit entry replaces the
// prior value for that key entirely, including its settings. Nested
// settings are never deep-merged: partial setting inheritance across
// layers is too easy to get subtly wrong, so an override must restate the
// whole entry.
func Merge(rs RuleSet) map[string]Value {
	size := len(rs.Tenant) + len(rs.Role) + len(rs.User)
	merged := make(map[string]Value, size)

	for _, layer := range []Layer{rs.Tenant, rs.Role, rs.User} {
		for key, value := range layer {
			merged[key] = value
		}
	}

	return merged
}

// Resolve returns the effective entry for a single key, reporting whether
// any layer had an explicit entry. Equivalent to Merge(rs)[key] without
// building the full map.
func Resolve(rs RuleSet, key string) (Value, bool) {
	var (
		value Value
		found bool
	)
	for _, layer := range []Layer{rs.Tenant, rs.Role, rs.User} {
		if v, ok := layer[key]; ok {
			value = v
			found = true
		}
	}
	return value, found
}
