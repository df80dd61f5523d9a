package listing

import (
	"sort"
	"strings"
)

// Query holds the directory filter inputs. Text is a case-insensitive
// substring query over the searchable fields. Sector and Location are
// categorical: a listing passes only when every supplied value matches.
type Query struct {
	Text     string
	Sector   string
	Location string
}

func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" &&
		strings.TrimSpace(q.Sector) == "" &&
		strings.TrimSpace(q.Location) == ""
}

// FilterStartups returns the subset of items matching the query. The sector
// filter matches against the comma-split sector tokens, not the raw field,
// so "Healthcare" matches a listing tagged "Healthcare, Technology".
func FilterStartups(items *Startups, q Query) *Startups {
	out := &Startups{}
	for _, item := range items.Items {
		if !matchText(item.SearchText(), q.Text) {
			continue
		}
		if !matchSector(item.Sectors(), q.Sector) {
			continue
		}
		if !matchExact(item.Location, q.Location) {
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// FilterInvestors returns the subset of items matching the query. Investors
// carry no location column, so Query.Location is ignored.
func FilterInvestors(items *Investors, q Query) *Investors {
	out := &Investors{}
	for _, item := range items.Items {
		if !matchText(item.SearchText(), q.Text) {
			continue
		}
		if !matchSector(item.Sectors(), q.Sector) {
			continue
		}
		out.Items = append(out.Items, item)
	}
	return out
}

// SectorOptions builds the deduplicated, alphabetically sorted option list
// for a sector filter dropdown, applying the same split/trim as the filter.
func SectorOptions(fields []string) []string {
	seen := make(map[string]struct{})
	var options []string
	for _, field := range fields {
		for _, sector := range splitSectors(field) {
			if _, ok := seen[sector]; ok {
				continue
			}
			seen[sector] = struct{}{}
			options = append(options, sector)
		}
	}
	sort.Strings(options)
	return options
}

func matchText(haystack, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(query))
}

func matchSector(sectors []string, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	for _, s := range sectors {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

func matchExact(field, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" {
		return true
	}
	return field == want
}
