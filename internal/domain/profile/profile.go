package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type Links struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

type Download struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type TimelineEntry struct {
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Location string   `json:"location,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

type Project struct {
	Name        string   `json:"name"`
	When        string   `json:"when,omitempty"`
	Description string   `json:"description,omitempty"`
	Link        string   `json:"link,omitempty"`
	Repo        string   `json:"repo,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type Education struct {
	Program  string `json:"program"`
	School   string `json:"school"`
	Location string `json:"location,omitempty"`
	When     string `json:"when,omitempty"`
}

type SkillGroup struct {
	Category string
	Skills   []string
}

// Skills keeps the category order of the source document.
type Skills []SkillGroup

func (s *Skills) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	// Anything other than an object renders as no skill groups.
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		*s = Skills{}
		return nil
	}

	groups := Skills{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		// A category that is not a list of strings renders with no skills.
		var items []string
		if err := json.Unmarshal(raw, &items); err != nil {
			items = []string{}
		}
		groups = append(groups, SkillGroup{Category: key, Skills: items})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = groups
	return nil
}

func (s Skills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Category)
		if err != nil {
			return nil, err
		}
		items := g.Skills
		if items == nil {
			items = []string{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Profile is the CV document. It is read-only once loaded.
type Profile struct {
	Name           string          `json:"name"`
	Title          string          `json:"title"`
	Location       string          `json:"location"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Summary        string          `json:"summary"`
	Headline       string          `json:"headline,omitempty"`
	Links          Links           `json:"links"`
	Skills         Skills          `json:"skills,omitempty"`
	Highlights     []string        `json:"highlights,omitempty"`
	Focus          []string        `json:"focus,omitempty"`
	Downloads      []Download      `json:"downloads,omitempty"`
	Experience     []TimelineEntry `json:"experience,omitempty"`
	Projects       []Project       `json:"projects,omitempty"`
	Education      []Education     `json:"education,omitempty"`
	Certifications []string        `json:"certifications,omitempty"`
	Languages      []string        `json:"languages,omitempty"`
}

// text decodes any non-string JSON value as "".
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*t = ""
		return nil
	}
	*t = text(v)
	return nil
}

type lenientLinks struct {
	LinkedIn text `json:"linkedin"`
	GitHub   text `json:"github"`
}

func (l *lenientLinks) UnmarshalJSON(data []byte) error {
	var raw struct {
		LinkedIn text `json:"linkedin"`
		GitHub   text `json:"github"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = lenientLinks{}
		return nil
	}
	*l = lenientLinks(raw)
	return nil
}

// UnmarshalJSON reads the top-level scalars leniently: a value of the wrong
// type becomes "" instead of failing the whole document.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	aux := struct {
		*plain
		Name     text         `json:"name"`
		Title    text         `json:"title"`
		Location text         `json:"location"`
		Email    text         `json:"email"`
		Phone    text         `json:"phone"`
		Summary  text         `json:"summary"`
		Headline text         `json:"headline"`
		Links    lenientLinks `json:"links"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.Name = string(aux.Name)
	p.Title = string(aux.Title)
	p.Location = string(aux.Location)
	p.Email = string(aux.Email)
	p.Phone = string(aux.Phone)
	p.Summary = string(aux.Summary)
	p.Headline = string(aux.Headline)
	p.Links = Links{LinkedIn: string(aux.Links.LinkedIn), GitHub: string(aux.Links.GitHub)}
	return nil
}

// DisplayHeadline falls back to the summary when no headline is set.
func (p *Profile) DisplayHeadline() string {
	if p.Headline != "" {
		return p.Headline
	}
	return p.Summary
}

// Parse decodes a profile document.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}

// Source produces the profile for one render pass.
type Source interface {
	Fetch(ctx context.Context) (*Profile, error)
}

// Document is a stored profile revision.
type Document struct {
	Slug      string
	Profile   *Profile
	UpdatedAt time.Time
}

type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*Document, error)
	Upsert(ctx context.Context, doc *Document) error
}
