package feed

import (
	"context"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/logger"
	"github.com/rediet/portfolio/pkg/markup"
)

// ProjectFeedUseCase publishes the profile's selected projects as a feed.
type ProjectFeedUseCase struct {
	profiles *profileUC.LoadProfileUseCase
	baseURL  string
	now      func() time.Time
	logger   logger.Logger
}

func NewProjectFeedUseCase(profiles *profileUC.LoadProfileUseCase, baseURL string, log logger.Logger) *ProjectFeedUseCase {
	return &ProjectFeedUseCase{
		profiles: profiles,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
		logger:   log,
	}
}

func (uc *ProjectFeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	loaded, err := uc.profiles.Execute(ctx)
	if err != nil {
		return nil, err
	}
	p := loaded.Profile

	now := uc.now()
	title := "Projects"
	if p.Name != "" {
		title = p.Name + " - Projects"
	}
	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: uc.baseURL + "/"},
		Description: p.DisplayHeadline(),
		Author:      &feeds.Author{Name: p.Name, Email: p.Email},
		Created:     now,
	}

	feed.Items = make([]*feeds.Item, 0, len(p.Projects))
	for i, pr := range p.Projects {
		feed.Items = append(feed.Items, uc.item(pr, i, now))
	}

	uc.logger.Info("Project feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

func (uc *ProjectFeedUseCase) item(pr profile.Project, i int, now time.Time) *feeds.Item {
	link := markup.NormalizeURL(pr.Link)
	if link == "" {
		link = markup.NormalizeURL(pr.Repo)
	}
	if link == "" {
		link = uc.baseURL + "/#selectedProjects"
	}

	desc := pr.Description
	if len(pr.Tags) > 0 {
		desc += " [" + strings.Join(pr.Tags, ", ") + "]"
	}

	title := pr.Name
	if pr.When != "" {
		title += " (" + pr.When + ")"
	}

	return &feeds.Item{
		Id:          link + "#" + pr.Name,
		Title:       title,
		Link:        &feeds.Link{Href: link},
		Description: strings.TrimSpace(desc),
		// Keep the profile's order when readers sort by date.
		Created: now.Add(-time.Duration(i) * time.Minute),
	}
}
