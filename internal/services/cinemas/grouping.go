package cinemas

import (
	"sort"

	"showtimes/proj/internal/domain/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type CinemaGroup struct {
	CinemaID   int            `json:"cinemaId"`
	CinemaName string         `json:"cinemaName"`
	Movies     []models.Movie `json:"movies"`
}

// dedupKey collapses repeated listings of one film. The upstream _id is not
// unique across listings, so title and year stand in for identity here only.
func dedupKey(m *models.Movie) string {
	return m.Title + "-" + m.Year
}

// GroupByCinema buckets movies per showtime cinema, keeping at most one movie
// per title-year in each bucket. A movie playing at several cinemas appears
// in each of their buckets. Groups are ordered by cinema name under tag's
// collation.
func GroupByCinema(movies []models.Movie, tag language.Tag) []CinemaGroup {
	type bucket struct {
		group *CinemaGroup
		seen  map[string]struct{}
	}
	buckets := make(map[int]*bucket)
	var order []*CinemaGroup
	for i := range movies {
		movie := &movies[i]
		key := dedupKey(movie)
		for _, st := range movie.Showtimes {
			b, ok := buckets[st.Cinema.ID]
			if !ok {
				b = &bucket{
					group: &CinemaGroup{CinemaID: st.Cinema.ID, CinemaName: st.Cinema.Name},
					seen:  make(map[string]struct{}),
				}
				buckets[st.Cinema.ID] = b
				order = append(order, b.group)
			}
			if _, dup := b.seen[key]; dup {
				continue
			}
			b.seen[key] = struct{}{}
			b.group.Movies = append(b.group.Movies, *movie)
		}
	}

	groups := make([]CinemaGroup, 0, len(order))
	for _, g := range order {
		groups = append(groups, *g)
	}
	col := collate.New(tag)
	sort.SliceStable(groups, func(i, j int) bool {
		return col.CompareString(groups[i].CinemaName, groups[j].CinemaName) < 0
	})
	return groups
}

// MoviesAtCinema returns the movies with at least one showtime at cinemaID,
// deduplicated by title-year, in input order.
func MoviesAtCinema(movies []models.Movie, cinemaID int) []models.Movie {
	seen := make(map[string]struct{})
	out := make([]models.Movie, 0)
	for i := range movies {
		if !playsAt(&movies[i], cinemaID) {
			continue
		}
		key := dedupKey(&movies[i])
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, movies[i])
	}
	return out
}

func playsAt(m *models.Movie, cinemaID int) bool {
	for _, st := range m.Showtimes {
		if st.Cinema.ID == cinemaID {
			return true
		}
	}
	return false
}

func sortTheaters(theaters []models.Theater, tag language.Tag) {
	col := collate.New(tag)
	sort.SliceStable(theaters, func(i, j int) bool {
		return col.CompareString(theaters[i].Name, theaters[j].Name) < 0
	})
}
