package filter

// Stats summarizes a set of displayed events
type Stats struct {
	Total      int `json:"total"`
	Free       int `json:"free"`
	Organizers int `json:"organizers"`
	Venues     int `json:"venues"`
}

// ComputeStats counts views, free views, and distinct organizers and venues
func ComputeStats(views []*View) Stats {
	organizers := make(map[string]struct{})
	venues := make(map[string]struct{})

	s := Stats{Total: len(views)}
	for _, v := range views {
		if v.IsFree() {
			s.Free++
		}
		organizers[v.Organizer] = struct{}{}
		venues[v.Venue] = struct{}{}
	}
	s.Organizers = len(organizers)
	s.Venues = len(venues)

	return s
}
