package http

import (
	"time"

	"github.com/rediet/portfolio/internal/domain/profile"
)

type ContactRequest struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Message string `form:"message"`
}

type ProfileResponse struct {
	Profile  *profile.Profile `json:"profile"`
	Embedded bool             `json:"embedded"`
}

type ProfileDocumentDTO struct {
	Slug      string           `json:"slug"`
	Profile   *profile.Profile `json:"profile"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func ToProfileDocumentDTO(doc *profile.Document) ProfileDocumentDTO {
	return ProfileDocumentDTO{
		Slug:      doc.Slug,
		Profile:   doc.Profile,
		UpdatedAt: doc.UpdatedAt,
	}
}
