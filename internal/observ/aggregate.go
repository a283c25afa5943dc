package observ

// PhaseStats summarizes one named phase across benchmark iterations.
type PhaseStats struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// Aggregate folds per-iteration reports into per-phase min/mean/max
// statistics, keyed by phase name. Phases keep their first-seen order.
func Aggregate(reports []Report) []PhaseStats {
	order := make([]string, 0, 8)
	byName := make(map[string]*PhaseStats, 8)
	for _, r := range reports {
		for _, p := range r.Phases {
			st, ok := byName[p.Name]
			if !ok {
				st = &PhaseStats{Name: p.Name, MinMS: p.DurationMS, MaxMS: p.DurationMS}
				byName[p.Name] = st
				order = append(order, p.Name)
			}
			if p.DurationMS < st.MinMS {
				st.MinMS = p.DurationMS
			}
			if p.DurationMS > st.MaxMS {
				st.MaxMS = p.DurationMS
			}
			st.MeanMS += p.DurationMS
			st.Count++
		}
	}
	out := make([]PhaseStats, 0, len(order))
	for _, name := range order {
		st := byName[name]
		if st.Count > 0 {
			st.MeanMS /= float64(st.Count)
		}
		out = append(out, *st)
	}
	return out
}
