package venue

import (
	"errors"
	"sort"
)

// ErrNoData is returned by every query when the dataset is empty.
var ErrNoData = errors.New("no venue data available")

// adminColumns drive filtering only and never reach the user.
var adminColumns = map[string]bool{
	ColRank:       true,
	ColHasParking: true,
	ColOpenLate:   true,
}

// Repository answers queries over a fixed venue list.
type Repository struct {
	venues []Venue
}

// NewRepository copies the venues and orders them by ascending rank.
// Venues sharing a rank keep their input order.
func NewRepository(venues []Venue) *Repository {
	sorted := make([]Venue, len(venues))
	copy(sorted, venues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rank < sorted[j].Rank
	})
	return &Repository{venues: sorted}
}

func (r *Repository) Len() int {
	return len(r.venues)
}

// Filter keeps venues whose late-opening and parking flags equal the Yes/No
// preferences; an Unknown preference does not restrict. A No for
// includeContact drops the contact and website columns.
func (r *Repository) Filter(late, parking, includeContact TriState) ([]Record, error) {
	if len(r.venues) == 0 {
		return nil, ErrNoData
	}

	out := []Record{}
	for _, v := range r.venues {
		if late != Unknown && v.OpenLate != late {
			continue
		}
		if parking != Unknown && v.HasParking != parking {
			continue
		}

		var rec Record
		for _, f := range v.fields() {
			if adminColumns[f.Key] {
				continue
			}
			if includeContact == No && (f.Key == ColContact || f.Key == ColWebsite) {
				continue
			}
			rec = append(rec, f)
		}
		out = append(out, rec)
	}

	return out, nil
}

// ListAll projects every venue to its name, in rank order.
func (r *Repository) ListAll() ([]Record, error) {
	if len(r.venues) == 0 {
		return nil, ErrNoData
	}

	out := make([]Record, 0, len(r.venues))
	for _, v := range r.venues {
		out = append(out, Record{{Key: ColName, Value: v.Name}})
	}
	return out, nil
}

// TopN returns rank and name of the n best-ranked venues. A non-positive n or
// one larger than the dataset returns them all.
func (r *Repository) TopN(n int) ([]Record, error) {
	if len(r.venues) == 0 {
		return nil, ErrNoData
	}
	if n <= 0 || n > len(r.venues) {
		n = len(r.venues)
	}

	out := make([]Record, 0, n)
	for _, v := range r.venues[:n] {
		all := v.fields()
		out = append(out, Record{all[0], all[1]})
	}
	return out, nil
}

// DetailAll returns every column of every venue.
func (r *Repository) DetailAll() ([]Record, error) {
	if len(r.venues) == 0 {
		return nil, ErrNoData
	}

	out := make([]Record, 0, len(r.venues))
	for _, v := range r.venues {
		out = append(out, v.fields())
	}
	return out, nil
}
