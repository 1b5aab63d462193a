package models

// Progress is a done/total pair for dashboards.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Stats are recomputed from the live word sequence on every call.
type Stats struct {
	Total    int    `json:"total"`
	Learned  int    `json:"learned"`
	Reviewed int    `json:"reviewed"`
	Tested   int    `json:"tested"`
	Source   string `json:"source"`
}

// LearnProgress is (learned, total).
func (s Stats) LearnProgress() Progress {
	return Progress{Done: s.Learned, Total: s.Total}
}

// ReviewProgress is (reviewed, learned).
func (s Stats) ReviewProgress() Progress {
	return Progress{Done: s.Reviewed, Total: s.Learned}
}

// TestProgress is (tested, total).
func (s Stats) TestProgress() Progress {
	return Progress{Done: s.Tested, Total: s.Total}
}

// ProgressFor picks the dashboard pair that belongs to mode.
func (s Stats) ProgressFor(mode Mode) Progress {
	switch mode {
	case ModeReview:
		return s.ReviewProgress()
	case ModeTest:
		return s.TestProgress()
	default:
		return s.LearnProgress()
	}
}

// ComputeStats counts milestones over words.
func ComputeStats(words []*WordRecord) Stats {
	st := Stats{Total: len(words)}
	for _, w := range words {
		if w.Learned {
			st.Learned++
		}
		if w.Reviewed {
			st.Reviewed++
		}
		if w.Tested {
			st.Tested++
		}
	}
	return st
}
