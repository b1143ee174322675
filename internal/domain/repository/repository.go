package repository

import (
	"context"
	"time"
)

type License struct {
	SPDXID string `json:"spdx_id"`
}

// Summary is one public repository as returned by the GitHub listing API.
type Summary struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
	PushedAt    time.Time `json:"pushed_at"`
	Stars       int       `json:"stargazers_count"`
	Fork        bool      `json:"fork"`
	Language    string    `json:"language"`
	License     *License  `json:"license"`
	HTMLURL     string    `json:"html_url"`
}

// LicenseID returns the SPDX identifier or "" when the repository has none.
func (s Summary) LicenseID() string {
	if s.License == nil {
		return ""
	}
	return s.License.SPDXID
}

// Lister fetches the repositories of a code hosting user.
type Lister interface {
	ListByUser(ctx context.Context, username string) ([]Summary, error)
}
