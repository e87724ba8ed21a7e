package imageresolver

// CandidateList is the retry state of one rendered image: the candidates and
// the index currently displayed. The last candidate is terminal.
type CandidateList struct {
	candidates []string
	cursor     int
}

// NewCandidateList copies candidates. An empty list becomes the inline placeholder.
func NewCandidateList(candidates []string) *CandidateList {
	if len(candidates) == 0 {
		return &CandidateList{candidates: []string{InlinePlaceholder}}
	}
	return &CandidateList{candidates: append([]string(nil), candidates...)}
}

func (l *CandidateList) Current() string {
	return l.candidates[l.cursor]
}

func (l *CandidateList) Cursor() int {
	return l.cursor
}

func (l *CandidateList) Len() int {
	return len(l.candidates)
}

func (l *CandidateList) Candidates() []string {
	return append([]string(nil), l.candidates...)
}

// Exhausted reports whether the terminal placeholder is being shown.
func (l *CandidateList) Exhausted() bool {
	return l.cursor == len(l.candidates)-1
}

// Advance handles a load failure of the current candidate. It moves to the
// next candidate and reports whether that one is terminal. Once terminal,
// further calls change nothing and keep returning the placeholder.
func (l *CandidateList) Advance() (string, bool) {
	next, url, terminal := Next(l.candidates, l.cursor)
	l.cursor = next
	return url, terminal
}

// Next is the stateless form of Advance for clients that keep the cursor
// themselves. Out-of-range cursors resolve to the terminal candidate.
func Next(candidates []string, current int) (next int, url string, terminal bool) {
	if len(candidates) == 0 {
		return 0, InlinePlaceholder, true
	}
	last := len(candidates) - 1
	switch {
	case current < 0:
		next = 0
	case current >= last:
		next = last
	default:
		next = current + 1
	}
	return next, candidates[next], next == last
}
