package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

func projectsNamed(names ...string) []domain.Project {
	projects := make([]domain.Project, len(names))
	for i, name := range names {
		projects[i] = domain.Project{ID: int64(i + 1), Name: name}
	}
	return projects
}

func TestSelect(t *testing.T) {
	all := projectsNamed("alpha", "beta", "gamma", "delta", "epsilon")

	testCases := []struct {
		name     string
		projects []domain.Project
		allow    []string
		expected []domain.Project
	}{
		{
			name:     "empty projects select nothing",
			allow:    []string{"alpha"},
			expected: nil,
		},
		{
			name:     "no allow-list takes the first three",
			projects: all,
			expected: all[:3],
		},
		{
			name:     "allow-list keeps project order",
			projects: all,
			allow:    []string{"delta", "alpha", "epsilon", "beta"},
			expected: []domain.Project{all[0], all[1], all[3], all[4]},
		},
		{
			name:     "allow-list is case-sensitive",
			projects: all,
			allow:    []string{"ALPHA", "gamma"},
			expected: []domain.Project{all[2]},
		},
		{
			name:     "allow-list without matches falls back to the first three",
			projects: projectsNamed("Foo", "Baz"),
			allow:    []string{"Bar"},
			expected: projectsNamed("Foo", "Baz"),
		},
		{
			name:     "fewer than three projects",
			projects: all[:2],
			expected: all[:2],
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Select(tc.projects, tc.allow))
		})
	}
}

func TestSelect_DoesNotAliasInput(t *testing.T) {
	all := projectsNamed("alpha", "beta", "gamma", "delta")
	featured := Select(all, nil)
	featured[0].Name = "changed"
	assert.Equal(t, "alpha", all[0].Name)
}
