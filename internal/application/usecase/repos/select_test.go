package repos

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rediet/portfolio/internal/domain/repository"
)

func TestSelectDropsForksAndBreaksTiesByPush(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	got := Select([]repository.Summary{
		{Name: "fork", Fork: true, Stars: 9},
		{Name: "older", Stars: 5, PushedAt: t1},
		{Name: "newer", Stars: 5, PushedAt: t2},
	})

	assert.Len(t, got, 2)
	assert.Equal(t, "newer", got[0].Name)
	assert.Equal(t, "older", got[1].Name)
}

func TestSelectOrdersByStarsAndTruncates(t *testing.T) {
	var list []repository.Summary
	for i := 0; i < 12; i++ {
		list = append(list, repository.Summary{Name: fmt.Sprintf("r%d", i), Stars: i})
	}

	got := Select(list)

	assert.Len(t, got, MaxDisplayed)
	assert.Equal(t, "r11", got[0].Name)
	assert.Equal(t, "r4", got[MaxDisplayed-1].Name)
	assert.Equal(t, "r0", list[0].Name, "input must not be reordered")
}

func TestSelectEmpty(t *testing.T) {
	assert.Empty(t, Select(nil))
	assert.Empty(t, Select([]repository.Summary{{Fork: true}}))
}

func TestTags(t *testing.T) {
	tests := []struct {
		name string
		repo repository.Summary
		want []string
	}{
		{"both", repository.Summary{Language: "Go", License: &repository.License{SPDXID: "MIT"}}, []string{"Go", "MIT"}},
		{"language only", repository.Summary{Language: "Go"}, []string{"Go"}},
		{"license only", repository.Summary{License: &repository.License{SPDXID: "Apache-2.0"}}, []string{"Apache-2.0"}},
		{"license without id", repository.Summary{License: &repository.License{}}, []string{}},
		{"none", repository.Summary{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tags(tt.repo))
		})
	}
}

func TestDiscoverUsername(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/alice/", "alice"},
		{"https://gitlab.com/alice", ""},
		{"github.com/alice", "alice"},
		{"https://GitHub.com//bob/repo", "bob"},
		{"https://github.com/", ""},
		{"", ""},
		{"https://github.com:443/carol", "carol"},
		{"https://notgithub.com/alice", ""},
		{"http://[::1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscoverUsername(tt.in, "github.com"))
		})
	}
}
