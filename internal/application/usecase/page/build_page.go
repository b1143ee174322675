package page

import (
	"context"
	"time"

	"go.uber.org/zap"

	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/application/usecase/repos"
	"github.com/rediet/portfolio/internal/application/usecase/theme"
	"github.com/rediet/portfolio/internal/domain/kv"
	"github.com/rediet/portfolio/internal/domain/page"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/apperror"
	"github.com/rediet/portfolio/pkg/logger"
)

// BuildPageUseCase runs the whole page pipeline: theme, profile, repository
// discovery and listing. Failures degrade the page, they never abort it.
type BuildPageUseCase struct {
	themes   *theme.Controller
	profiles *profileUC.LoadProfileUseCase
	repos    *repos.LoadReposUseCase
	mail     MailTemplate
	host     string
	now      func() time.Time
	logger   logger.Logger
}

func NewBuildPageUseCase(
	themes *theme.Controller,
	profiles *profileUC.LoadProfileUseCase,
	reposUC *repos.LoadReposUseCase,
	mail MailTemplate,
	host string,
	log logger.Logger,
) *BuildPageUseCase {
	return &BuildPageUseCase{
		themes:   themes,
		profiles: profiles,
		repos:    reposUC,
		mail:     mail,
		host:     host,
		now:      time.Now,
		logger:   log,
	}
}

type BuildPageInput struct {
	// ThemeStore holds the visitor's preference.
	ThemeStore kv.Store
	// SystemTheme is the client's color scheme signal, "" when unknown.
	SystemTheme string
}

type BuildPageOutput struct {
	Page     page.Page
	Profile  *profile.Profile
	Username string
}

func (uc *BuildPageUseCase) Execute(ctx context.Context, input BuildPageInput) *BuildPageOutput {
	applied := uc.themes.Apply(ctx, input.ThemeStore, uc.themes.Resolve(ctx, input.ThemeStore, input.SystemTheme))

	out := &BuildPageOutput{Page: page.Page{Theme: string(applied.Theme), Slots: page.Slots{}}}
	out.Page.Slots.SetText(page.SlotThemeLabel, applied.Label)

	loaded, err := uc.profiles.Execute(ctx)
	if err != nil {
		uc.logger.Error("Profile unavailable, rendering without it", err)
		out.Page.Slots.SetText(page.SlotRepoHint, HintProfileFailed)
		out.Page.Outcome = page.OutcomeDataUnavailable
		return out
	}
	out.Profile = loaded.Profile

	slots, githubURL := RenderProfile(loaded.Profile, uc.now(), uc.mail)
	for id, s := range slots {
		out.Page.Slots[id] = s
	}

	username := repos.DiscoverUsername(githubURL, uc.host)
	if username == "" {
		uc.logger.Warn("No code hosting username in profile", zap.Error(apperror.NewUsernameNotFound(githubURL)))
		out.Page.Slots.SetText(page.SlotRepoHint, HintNoUsername)
		out.Page.Outcome = page.OutcomeUsernameNotFound
		return out
	}
	out.Username = username

	listed, err := uc.repos.Execute(ctx, username)
	if err != nil {
		uc.logger.Warn("Repository listing unavailable", zap.String("username", username), zap.Error(err))
		RenderRepositoriesUnavailable(out.Page.Slots, uc.host, username)
		out.Page.Outcome = page.OutcomeRemoteUnavailable
		return out
	}

	RenderRepositories(out.Page.Slots, listed.Repos, uc.host, username)
	out.Page.Outcome = page.OutcomeComplete
	return out
}
