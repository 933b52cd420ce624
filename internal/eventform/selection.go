package eventform

// Selection is the ordered set of selected padel category ids. The first
// element is the default category.
type Selection []int64

// Contains reports whether id is selected.
func (s Selection) Contains(id int64) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Toggle adds id when absent and removes it when present. It returns true when
// id was added.
func (s *Selection) Toggle(id int64) bool {
	for i, v := range *s {
		if v == id {
			*s = append((*s)[:i:i], (*s)[i+1:]...)
			return false
		}
	}
	*s = append(*s, id)
	return true
}

// Default returns the first selected category.
func (s Selection) Default() (int64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0], true
}

// Normalize drops duplicates, keeping first occurrences in order.
func (s Selection) Normalize() Selection {
	seen := make(map[int64]bool, len(s))
	out := make(Selection, 0, len(s))
	for _, v := range s {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
