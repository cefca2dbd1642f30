package testing

// RecordingSink keeps every committed markup value.
type RecordingSink struct {
	commits []string

	// Err, when set, is returned by Commit instead of recording.
	Err error
}

// Commit records markup, or returns Err.
func (s *RecordingSink) Commit(markup string) error {
	if s.Err != nil {
		return s.Err
	}
	s.commits = append(s.commits, markup)
	return nil
}

// Commits returns every recorded commit in order.
func (s *RecordingSink) Commits() []string {
	return append([]string(nil), s.commits...)
}

// Count returns the number of recorded commits.
func (s *RecordingSink) Count() int { return len(s.commits) }

// Last returns the most recent commit, or "" when there is none.
func (s *RecordingSink) Last() string {
	if len(s.commits) == 0 {
		return ""
	}
	return s.commits[len(s.commits)-1]
}
