// Package roles resolves the display names of the roles a guild member holds.
package roles

// Baseline is the role every guild member holds implicitly. Discord never
// lists it in a member's role ids.
const Baseline = "@everyone"

// Membership is the set of role ids a caller holds in one guild.
// A nil *Membership means the member could not be fetched.
type Membership struct {
	RoleIDs []string
}

// Catalog maps role ids to display names for one guild. It may be empty when
// the guild has not been cached yet.
type Catalog map[string]string

// Resolve turns a membership into an ordered, de-duplicated list of role
// names with Baseline first. Role ids missing from the catalog are skipped.
//
// ok is false when m is nil, so callers can tell "membership unavailable"
// apart from "no roles".
func Resolve(m *Membership, catalog Catalog) (names []string, ok bool) {
	if m == nil {
		return nil, false
	}

	seen := make(map[string]struct{}, len(m.RoleIDs)+1)
	names = make([]string, 0, len(m.RoleIDs)+1)
	for _, id := range m.RoleIDs {
		name, found := catalog[id]
		if !found {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	if _, has := seen[Baseline]; !has {
		names = append([]string{Baseline}, names...)
	}
	return names, true
}
