package utils

// SeenSet tracks race detail URLs already handled in the current run so a
// race listed under several rows (or several trainers) is enriched at most
// once. Scoped to one pipeline execution; not persisted.
type SeenSet struct {
	seen map[string]struct{}
}

// NewSeenSet creates an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Add returns true if the URL is new, false if it was already recorded.
// First occurrence wins.
func (s *SeenSet) Add(url string) bool {
	if _, ok := s.seen[url]; ok {
		return false
	}
	s.seen[url] = struct{}{}
	return true
}

// Count returns the number of recorded URLs.
func (s *SeenSet) Count() int {
	return len(s.seen)
}
