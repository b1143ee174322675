package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rediet/portfolio/adapters/document"
	"github.com/rediet/portfolio/adapters/github"
	"github.com/rediet/portfolio/adapters/persistence"
	"github.com/rediet/portfolio/adapters/source"
	pageUC "github.com/rediet/portfolio/internal/application/usecase/page"
	profileUC "github.com/rediet/portfolio/internal/application/usecase/profile"
	"github.com/rediet/portfolio/internal/application/usecase/repos"
	"github.com/rediet/portfolio/internal/application/usecase/theme"
	"github.com/rediet/portfolio/internal/config"
	"github.com/rediet/portfolio/internal/domain/page"
	"github.com/rediet/portfolio/internal/domain/profile"
	"github.com/rediet/portfolio/pkg/logger"
)

type renderOptions struct {
	ProfilePath  string
	TemplatePath string
	Theme        string
	Output       string
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the portfolio page to a static HTML file",
	Long: `Runs the same pipeline as the server once and writes the resulting
document. The profile comes from --profile when given, otherwise from the
configured profile URL.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderOpts.ProfilePath, "profile", "", "profile JSON file")
	renderCmd.Flags().StringVar(&renderOpts.TemplatePath, "template", "", "host document (defaults to the built-in one)")
	renderCmd.Flags().StringVar(&renderOpts.Theme, "theme", "", "light or dark (default dark)")
	renderCmd.Flags().StringVarP(&renderOpts.Output, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewNopLogger()
	if verbose {
		log = logger.NewZapLogger(cfg.App.Env)
		defer log.Sync()
	}

	var buf bytes.Buffer
	outcome, err := renderPage(cmd.Context(), cfg, renderOpts, http.DefaultClient, log, &buf)
	if err != nil {
		return err
	}
	log.Info("Page rendered", zap.String("outcome", string(outcome)))

	if renderOpts.Output == "" {
		_, err = io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := os.WriteFile(renderOpts.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", renderOpts.Output, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", renderOpts.Output, outcome)
	return nil
}

// renderPage builds one page and writes it to w. It returns the page outcome.
func renderPage(ctx context.Context, cfg config.Config, opts renderOptions, client *http.Client, log logger.Logger, w io.Writer) (page.Outcome, error) {
	var src profile.Source = source.NewHTTPSource(cfg.Profile.URL, client, log)
	if opts.ProfilePath != "" {
		src = source.NewFileSource(opts.ProfilePath)
	}

	templatePath := opts.TemplatePath
	if templatePath == "" {
		templatePath = cfg.Document.TemplatePath
	}
	doc, err := document.Load(templatePath)
	if err != nil {
		return "", err
	}

	themeStore := persistence.NewMemoryStore()
	if t, ok := theme.Parse(opts.Theme); ok {
		if err := themeStore.Set(ctx, theme.StorageKey, string(t)); err != nil {
			return "", err
		}
	}

	build := pageUC.NewBuildPageUseCase(
		theme.NewController(log),
		profileUC.NewLoadProfileUseCase(nil, src, log),
		repos.NewLoadReposUseCase(github.NewClient(cfg.GitHub.APIBase, client, log), persistence.NewMemoryStore(), log),
		pageUC.MailTemplate{Subject: cfg.Mail.Subject, Greeting: cfg.Mail.Greeting},
		cfg.GitHub.Host,
		log,
	)
	out := build.Execute(ctx, pageUC.BuildPageInput{ThemeStore: themeStore})

	if err := doc.Render(w, out.Page); err != nil {
		return "", fmt.Errorf("render page: %w", err)
	}
	return out.Page.Outcome, nil
}
