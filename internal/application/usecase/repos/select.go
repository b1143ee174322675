package repos

import (
	"net/url"
	"sort"
	"strings"

	"github.com/rediet/portfolio/internal/domain/repository"
	"github.com/rediet/portfolio/pkg/markup"
)

const (
	MaxDisplayed = 8
	maxTags      = 2
)

// Select picks what the page shows: no forks, most stars first, ties broken by
// the most recent push, at most MaxDisplayed entries. The input is not modified.
func Select(list []repository.Summary) []repository.Summary {
	out := make([]repository.Summary, 0, len(list))
	for _, r := range list {
		if r.Fork {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stars != out[j].Stars {
			return out[i].Stars > out[j].Stars
		}
		return out[i].PushedAt.After(out[j].PushedAt)
	})

	if len(out) > MaxDisplayed {
		out = out[:MaxDisplayed]
	}
	return out
}

// Tags lists the language and the license id, skipping the missing ones.
func Tags(r repository.Summary) []string {
	tags := make([]string, 0, maxTags)
	for _, t := range []string{r.Language, r.LicenseID()} {
		if t != "" && len(tags) < maxTags {
			tags = append(tags, t)
		}
	}
	return tags
}

// DiscoverUsername extracts the username from a code hosting profile URL.
// Any other host, or a URL that does not parse, yields "".
func DiscoverUsername(profileURL, host string) string {
	u := markup.NormalizeURL(profileURL)
	if u == "" {
		return ""
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	if !strings.EqualFold(parsed.Hostname(), host) {
		return ""
	}
	for _, seg := range strings.Split(parsed.Path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
