package accordion

// Propose returns the membership a multi-open collapsible proposes when the
// header of id is activated: id is removed if present, appended otherwise.
// The state machine decides what actually happens.
func Propose(open []string, id string) []string {
	out := make([]string, 0, len(open)+1)
	found := false
	for _, v := range open {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
