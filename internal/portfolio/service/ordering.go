package service

import (
	"cmp"
	"slices"

	"github.com/argenis972/portfolio-backend/internal/portfolio/domain"
)

// SortProjects returns a copy ordered featured first, then by name.
func SortProjects(projects []domain.Project) []domain.Project {
	out := slices.Clone(projects)
	slices.SortStableFunc(out, func(a, b domain.Project) int {
		if a.Featured != b.Featured {
			if a.Featured {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// SortExperiences returns a copy ordered current first, then by start date,
// most recent first. Equal keys keep their input order.
func SortExperiences(exps []domain.WorkExperience) []domain.WorkExperience {
	out := slices.Clone(exps)
	slices.SortStableFunc(out, func(a, b domain.WorkExperience) int {
		if a.Current != b.Current {
			if a.Current {
				return -1
			}
			return 1
		}
		return b.StartDate.Compare(a.StartDate.Time)
	})
	return out
}

// GroupStack partitions items by category. Categories and the items inside
// each one keep first-seen order.
func GroupStack(items []domain.StackItem) domain.StackGroups {
	groups := domain.StackGroups{}
	index := make(map[string]int)
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			groups = append(groups, domain.StackGroup{Category: it.Category})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Flatten lists every item in group order.
func Flatten(groups domain.StackGroups) []domain.StackItem {
	out := []domain.StackItem{}
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}
