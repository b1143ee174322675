package page

// Slot ids of the host document. A document may lack any of them.
const (
	SlotNameTop        = "nameTop"
	SlotNameHero       = "nameHero"
	SlotTitleTop       = "titleTop"
	SlotLocation       = "pillLocation"
	SlotEmailText      = "emailText"
	SlotPhoneText      = "phoneText"
	SlotSummaryTop     = "summaryTop"
	SlotSummaryBody    = "summaryBody"
	SlotHeadlineHero   = "headlineHero"
	SlotFooterMeta     = "footerMeta"
	SlotCopyright      = "copyright"
	SlotBtnEmail       = "btnEmail"
	SlotBtnGitHub      = "btnGitHub"
	SlotBtnLinkedIn    = "btnLinkedIn"
	SlotContactEmail   = "contactEmail"
	SlotContactGitHub  = "contactGitHub"
	SlotContactLinked  = "contactLinkedIn"
	SlotFocus          = "focusChips"
	SlotHighlights     = "highlightsList"
	SlotDownloads      = "cvLinks"
	SlotSkills         = "skillsGrid"
	SlotExperience     = "experienceTimeline"
	SlotProjects       = "selectedProjects"
	SlotEducation      = "educationList"
	SlotCertifications = "certList"
	SlotLanguages      = "langList"
	SlotRepoHint       = "githubHint"
	SlotRepos          = "githubProjects"
	SlotThemeLabel     = "themeLabel"
)

type SlotKind int

const (
	// Text replaces the element's content with a single text node.
	Text SlotKind = iota
	// HTML replaces the element's children with an already escaped fragment.
	HTML
	// Href sets the element's href attribute.
	Href
)

type Slot struct {
	Kind  SlotKind
	Value string
}

// Slots maps a slot id to its content. Each id is populated at most once.
type Slots map[string]Slot

func (s Slots) SetText(id, v string) { s[id] = Slot{Kind: Text, Value: v} }
func (s Slots) SetHTML(id, v string) { s[id] = Slot{Kind: HTML, Value: v} }
func (s Slots) SetHref(id, v string) { s[id] = Slot{Kind: Href, Value: v} }

// Outcome records which failure, if any, ended the page pipeline early.
type Outcome string

const (
	OutcomeComplete          Outcome = "complete"
	OutcomeDataUnavailable   Outcome = "data_unavailable"
	OutcomeUsernameNotFound  Outcome = "username_not_found"
	OutcomeRemoteUnavailable Outcome = "remote_unavailable"
)

// Page is everything needed to populate the host document once.
type Page struct {
	Theme   string
	Slots   Slots
	Outcome Outcome
}
