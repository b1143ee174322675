package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rediet/portfolio/internal/domain/profile"
)

func TestListItems(t *testing.T) {
	assert.Equal(t, "<li>a</li><li>&lt;b&gt;</li>", ListItems([]string{"a", "<b>"}))
	assert.Equal(t, "", ListItems(nil))
}

func TestDownloadLinks(t *testing.T) {
	got := DownloadLinks([]profile.Download{{Label: "CV (PDF)", Href: "files/cv.pdf?v=1&x=2"}})
	assert.Equal(t, `<a class="link" href="files/cv.pdf?v=1&amp;x=2" download>CV (PDF)</a>`, got)
}

func TestSkillGroups(t *testing.T) {
	got := SkillGroups(profile.Skills{
		{Category: "Lang", Skills: []string{"Go", "C++"}},
		{Category: "Empty"},
	})

	assert.Equal(t,
		`<div class="panel"><h3>Lang</h3><div class="tags"><span class="tag">Go</span><span class="tag">C++</span></div></div>`+
			`<div class="panel"><h3>Empty</h3><div class="tags"></div></div>`,
		got)
}

func TestTimelineEntry(t *testing.T) {
	t.Run("full entry", func(t *testing.T) {
		got := TimelineEntry(profile.TimelineEntry{
			Role:     "Engineer",
			Company:  "Acme & Co",
			Location: "Remote",
			Dates:    "2020 – 2024",
			Bullets:  []string{"Shipped <things>"},
		})

		assert.Contains(t, got, `<h3 class="entry__role">Engineer</h3>`)
		assert.Contains(t, got, `<p class="entry__where">Acme &amp; Co — Remote</p>`)
		assert.Contains(t, got, `<div class="item__meta">2020 – 2024</div>`)
		assert.Contains(t, got, `<ul class="list"><li>Shipped &lt;things&gt;</li></ul>`)
	})

	t.Run("optional fields absent", func(t *testing.T) {
		got := TimelineEntry(profile.TimelineEntry{Role: "Intern", Company: "Acme"})

		assert.Contains(t, got, `<p class="entry__where">Acme</p>`)
		assert.NotContains(t, got, "<ul")
		assert.NotContains(t, got, "item__meta")
		assert.NotContains(t, got, "—")
	})
}

func TestProjectCard(t *testing.T) {
	t.Run("links are normalized and escaped", func(t *testing.T) {
		got := ProjectCard(profile.Project{
			Name:        "Folio",
			When:        "2024",
			Description: `Says "hi"`,
			Link:        "folio.dev/?a=1&b=2",
			Repo:        "https://github.com/alice/folio",
			Tags:        []string{"Go"},
		})

		assert.Contains(t, got, `<h4 class="item__title">Folio</h4>`)
		assert.Contains(t, got, `<p class="item__desc">Says &quot;hi&quot;</p>`)
		assert.Contains(t, got, `<div class="tags"><span class="tag">Go</span></div>`)
		assert.Contains(t, got, `href="https://folio.dev/?a=1&amp;b=2"`)
		assert.Contains(t, got, `href="https://github.com/alice/folio" target="_blank" rel="noreferrer">Repo</a>`)
	})

	t.Run("bare card has no empty containers", func(t *testing.T) {
		got := ProjectCard(profile.Project{Name: "Bare"})

		assert.NotContains(t, got, "item__desc")
		assert.NotContains(t, got, `class="tags"`)
		assert.NotContains(t, got, "downloads__links")
		assert.NotContains(t, got, "item__meta")
	})
}

func TestEducationEntry(t *testing.T) {
	got := EducationEntry(profile.Education{Program: "BSc CS", School: "AAU", Location: "Addis Ababa", When: "2016"})
	assert.Contains(t, got, `<h4 class="item__title">BSc CS</h4>`)
	assert.Contains(t, got, `<p class="item__desc">AAU — Addis Ababa</p>`)
	assert.Contains(t, got, `<div class="item__meta">2016</div>`)
}

func TestListRenderersKeepOrderWithoutSeparator(t *testing.T) {
	got := EducationList([]profile.Education{{Program: "A", School: "x"}, {Program: "B", School: "y"}})
	assert.Equal(t, EducationEntry(profile.Education{Program: "A", School: "x"})+EducationEntry(profile.Education{Program: "B", School: "y"}), got)
	assert.Less(t, strings.Index(got, ">A<"), strings.Index(got, ">B<"))

	assert.Equal(t, "", Timeline(nil))
	assert.Equal(t, "", ProjectCards([]profile.Project{}))
	assert.Equal(t, "", SkillGroups(nil))
}

func TestRepositoryFallback(t *testing.T) {
	got := RepositoryFallback("View GitHub", "https://github.com/a<b", "a<b")
	assert.Equal(t, `<p class="muted small">View GitHub: <a class="link" href="https://github.com/a&lt;b" target="_blank" rel="noreferrer">@a&lt;b</a></p>`, got)
}
