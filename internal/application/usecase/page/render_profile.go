package page

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rediet/portfolio/internal/application/usecase/repos"
	"github.com/rediet/portfolio/internal/domain/page"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/internal/domain/repository"
	"github.com/rediet/portfolio/internal/render"
	"github.com/rediet/portfolio/pkg/markup"
)

const (
	HintProfileFailed   = "Failed to load site data."
	HintNoUsername      = "GitHub username not found."
	HintRemoteFailed    = "GitHub API unavailable (rate limit / offline)."
	HintNoRepos         = "No public repositories found."
	HintReposAutoLoaded = "Top public repos (auto-fetched)."

	repoDateLayout = "Jan 2, 2006"
)

// MailTemplate is the fixed subject and greeting of the "email me" links.
type MailTemplate struct {
	Subject  string
	Greeting string
}

// RenderProfile maps a profile onto the document slots and returns the
// normalized GitHub profile URL for repository discovery.
func RenderProfile(p *profile.Profile, now time.Time, mail MailTemplate) (page.Slots, string) {
	slots := page.Slots{}

	slots.SetText(page.SlotNameTop, p.Name)
	slots.SetText(page.SlotNameHero, p.Name)
	slots.SetText(page.SlotTitleTop, p.Title)
	slots.SetText(page.SlotLocation, p.Location)
	slots.SetText(page.SlotEmailText, p.Email)
	slots.SetText(page.SlotPhoneText, p.Phone)
	slots.SetText(page.SlotSummaryTop, p.Summary)
	slots.SetText(page.SlotSummaryBody, p.Summary)
	slots.SetText(page.SlotHeadlineHero, p.DisplayHeadline())
	slots.SetText(page.SlotFooterMeta, fmt.Sprintf("%s • %s • %s", p.Name, p.Title, p.Location))
	slots.SetText(page.SlotCopyright, "© "+strconv.Itoa(now.Year())+" "+p.Name)

	githubURL := markup.NormalizeURL(p.Links.GitHub)
	linkedinURL := markup.NormalizeURL(p.Links.LinkedIn)
	mailURL := markup.Mailto(p.Email, mail.Subject, mail.Greeting)

	slots.SetHref(page.SlotBtnEmail, mailURL)
	slots.SetHref(page.SlotContactEmail, mailURL)
	slots.SetHref(page.SlotBtnGitHub, githubURL)
	slots.SetHref(page.SlotContactGitHub, githubURL)
	slots.SetHref(page.SlotBtnLinkedIn, linkedinURL)
	slots.SetHref(page.SlotContactLinked, linkedinURL)

	slots.SetHTML(page.SlotFocus, render.ListItems(p.Focus))
	// Highlights keep the document's own content unless the profile has some.
	if len(p.Highlights) > 0 {
		slots.SetHTML(page.SlotHighlights, render.ListItems(p.Highlights))
	}
	slots.SetHTML(page.SlotDownloads, render.DownloadLinks(p.Downloads))
	slots.SetHTML(page.SlotSkills, render.SkillGroups(p.Skills))
	slots.SetHTML(page.SlotExperience, render.Timeline(p.Experience))
	slots.SetHTML(page.SlotProjects, render.ProjectCards(p.Projects))
	slots.SetHTML(page.SlotEducation, render.EducationList(p.Education))
	slots.SetHTML(page.SlotCertifications, render.ListItems(p.Certifications))
	slots.SetHTML(page.SlotLanguages, render.ListItems(p.Languages))

	return slots, githubURL
}

// HostProfileURL is the fallback link target for a username.
func HostProfileURL(host, username string) string {
	return "https://" + host + "/" + username
}

// RenderRepositories fills the repository section from the raw listing.
func RenderRepositories(slots page.Slots, list []repository.Summary, host, username string) {
	selected := repos.Select(list)
	if len(selected) == 0 {
		slots.SetText(page.SlotRepoHint, HintNoRepos)
		slots.SetHTML(page.SlotRepos, render.RepositoryFallback("See GitHub", HostProfileURL(host, username), username))
		return
	}

	cards := make([]profile.Project, 0, len(selected))
	for _, r := range selected {
		when := ""
		if !r.UpdatedAt.IsZero() {
			when = "Updated " + r.UpdatedAt.Format(repoDateLayout)
		}
		cards = append(cards, profile.Project{
			Name:        r.Name,
			When:        when,
			Description: r.Description,
			Repo:        r.HTMLURL,
			Tags:        repos.Tags(r),
		})
	}

	slots.SetText(page.SlotRepoHint, HintReposAutoLoaded)
	slots.SetHTML(page.SlotRepos, render.ProjectCards(cards))
}

// RenderRepositoriesUnavailable is the degraded view when the listing failed.
func RenderRepositoriesUnavailable(slots page.Slots, host, username string) {
	slots.SetText(page.SlotRepoHint, HintRemoteFailed)
	slots.SetHTML(page.SlotRepos, render.RepositoryFallback("View GitHub", HostProfileURL(host, username), username))
}
