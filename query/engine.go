// Package query filters and orders issue lists for the portal views.
// Everything here is pure: inputs are never mutated.
package query

import (
	"sort"
	"strings"

	"civicreport-be/models"
)

// All disables a status or category constraint
const All = "all"

// Filter is the combined constraint set applied to the issue collection.
// Zero values mean "no constraint".
type Filter struct {
	Search   string
	Status   string
	Category string
	DateFrom string
	DateTo   string
}

// Direction of a sort
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort names the field and direction used to order a filtered result set
type Sort struct {
	Field     string
	Direction Direction
}

// Apply returns a fresh, ordered slice of the issues matching the filter.
// An issue passes only if every supplied criterion matches. Sorting is
// stable: ties keep the relative order they had in the input.
func Apply(issues []models.Issue, filter Filter, s Sort) []models.Issue {
	out := make([]models.Issue, 0, len(issues))
	for _, issue := range issues {
		if matches(issue, filter) {
			out = append(out, issue)
		}
	}

	less := lessFunc(s.Field)
	if less != nil {
		if s.Direction == Descending {
			inner := less
			less = func(a, b models.Issue) bool { return inner(b, a) }
		}
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matches(issue models.Issue, f Filter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(issue.Title), q) &&
			!strings.Contains(strings.ToLower(issue.Description), q) &&
			!strings.Contains(strings.ToLower(issue.Location), q) {
			return false
		}
	}
	if f.Status != "" && f.Status != All && string(issue.Status) != f.Status {
		return false
	}
	if f.Category != "" && f.Category != All && string(issue.Category) != f.Category {
		return false
	}
	// ISO dates compare correctly as strings
	if f.DateFrom != "" && issue.ReportedDate < f.DateFrom {
		return false
	}
	if f.DateTo != "" && issue.ReportedDate > f.DateTo {
		return false
	}
	return true
}

func lessFunc(field string) func(a, b models.Issue) bool {
	switch field {
	case "":
		return nil
	case "title":
		return func(a, b models.Issue) bool { return lessFold(a.Title, b.Title) }
	case "status":
		return func(a, b models.Issue) bool { return lessFold(string(a.Status), string(b.Status)) }
	case "category":
		return func(a, b models.Issue) bool { return lessFold(string(a.Category), string(b.Category)) }
	case "location":
		return func(a, b models.Issue) bool { return lessFold(a.Location, b.Location) }
	case "reportedBy":
		return func(a, b models.Issue) bool { return lessFold(a.ReportedBy, b.ReportedBy) }
	default:
		return func(a, b models.Issue) bool { return a.ReportedDate < b.ReportedDate }
	}
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
