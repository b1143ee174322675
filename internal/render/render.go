// Package render turns profile records into HTML fragments. Every function is
// pure; text goes through markup.Escape and links through markup.NormalizeURL
// before being escaped into an attribute.
package render

import (
	"strings"

	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/markup"
)

const linkAttrs = `target="_blank" rel="noreferrer"`

func tags(items []string) string {
	var b strings.Builder
	for _, t := range items {
		b.WriteString(`<span class="tag">` + markup.Escape(t) + `</span>`)
	}
	return b.String()
}

func where(place, location string) string {
	s := markup.Escape(place)
	if location != "" {
		s += " — " + markup.Escape(location)
	}
	return s
}

// ListItems renders one <li> per item.
func ListItems(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("<li>" + markup.Escape(it) + "</li>")
	}
	return b.String()
}

// DownloadLinks renders the downloadable documents. The href is escaped as
// given; downloads are usually relative paths so they are not normalized.
func DownloadLinks(downloads []profile.Download) string {
	var b strings.Builder
	for _, d := range downloads {
		b.WriteString(`<a class="link" href="` + markup.Escape(d.Href) + `" download>` + markup.Escape(d.Label) + `</a>`)
	}
	return b.String()
}

func SkillGroup(title string, items []string) string {
	return `<div class="panel"><h3>` + markup.Escape(title) + `</h3><div class="tags">` + tags(items) + `</div></div>`
}

func SkillGroups(groups profile.Skills) string {
	var b strings.Builder
	for _, g := range groups {
		b.WriteString(SkillGroup(g.Category, g.Skills))
	}
	return b.String()
}

func TimelineEntry(e profile.TimelineEntry) string {
	var b strings.Builder
	b.WriteString(`<div class="entry">`)
	b.WriteString(`<div class="entry__rail"><div class="entry__dot" aria-hidden="true"></div></div>`)
	b.WriteString(`<div class="entry__card"><div class="entry__head"><div>`)
	b.WriteString(`<h3 class="entry__role">` + markup.Escape(e.Role) + `</h3>`)
	b.WriteString(`<p class="entry__where">` + where(e.Company, e.Location) + `</p>`)
	b.WriteString(`</div>`)
	if e.Dates != "" {
		b.WriteString(`<div class="item__meta">` + markup.Escape(e.Dates) + `</div>`)
	}
	b.WriteString(`</div>`)
	if bullets := ListItems(e.Bullets); bullets != "" {
		b.WriteString(`<ul class="list">` + bullets + `</ul>`)
	}
	b.WriteString(`</div></div>`)
	return b.String()
}

func Timeline(entries []profile.TimelineEntry) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(TimelineEntry(e))
	}
	return b.String()
}

func ProjectCard(p profile.Project) string {
	var b strings.Builder
	b.WriteString(`<div class="item"><div class="item__top">`)
	b.WriteString(`<h4 class="item__title">` + markup.Escape(p.Name) + `</h4>`)
	if p.When != "" {
		b.WriteString(`<div class="item__meta">` + markup.Escape(p.When) + `</div>`)
	}
	b.WriteString(`</div>`)
	if p.Description != "" {
		b.WriteString(`<p class="item__desc">` + markup.Escape(p.Description) + `</p>`)
	}
	if t := tags(p.Tags); t != "" {
		b.WriteString(`<div class="tags">` + t + `</div>`)
	}

	var links []string
	if u := markup.NormalizeURL(p.Link); u != "" {
		links = append(links, `<a class="link" href="`+markup.Escape(u)+`" `+linkAttrs+`>Link</a>`)
	}
	if u := markup.NormalizeURL(p.Repo); u != "" {
		links = append(links, `<a class="link" href="`+markup.Escape(u)+`" `+linkAttrs+`>Repo</a>`)
	}
	if len(links) > 0 {
		b.WriteString(`<div class="downloads__links">` + strings.Join(links, "") + `</div>`)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func ProjectCards(projects []profile.Project) string {
	var b strings.Builder
	for _, p := range projects {
		b.WriteString(ProjectCard(p))
	}
	return b.String()
}

func EducationEntry(e profile.Education) string {
	var b strings.Builder
	b.WriteString(`<div class="item"><div class="item__top">`)
	b.WriteString(`<h4 class="item__title">` + markup.Escape(e.Program) + `</h4>`)
	if e.When != "" {
		b.WriteString(`<div class="item__meta">` + markup.Escape(e.When) + `</div>`)
	}
	b.WriteString(`</div>`)
	b.WriteString(`<p class="item__desc">` + where(e.School, e.Location) + `</p>`)
	b.WriteString(`</div>`)
	return b.String()
}

func EducationList(entries []profile.Education) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(EducationEntry(e))
	}
	return b.String()
}

// RepositoryFallback links straight to the hosting profile, e.g.
// "See GitHub: @alice".
func RepositoryFallback(prefix, profileURL, username string) string {
	return `<p class="muted small">` + markup.Escape(prefix) + `: <a class="link" href="` +
		markup.Escape(profileURL) + `" ` + linkAttrs + `>@` + markup.Escape(username) + `</a></p>`
}
