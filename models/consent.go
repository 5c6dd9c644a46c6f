package models

// ConsentTemplate is one entry of the server-supplied consent catalog.
type ConsentTemplate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	SummaryText string `json:"summary_text"`
	FullText    string `json:"full_text"`
	IsRequired  bool   `json:"is_required"`
	CanWithdraw bool   `json:"can_withdraw"`
}

// ConsentCatalog mirrors GET /consent/requirements.
type ConsentCatalog struct {
	Templates        map[string]ConsentTemplate `json:"templates"`
	RequiredConsents []string                   `json:"required_consents"`
	OptionalConsents []string                   `json:"optional_consents"`
}

// ConsentSet maps consent-type identifiers to their granted state.
type ConsentSet map[string]bool

// MissingRequired returns the identifiers from required that the set does
// not map to true, preserving catalog order.
func (s ConsentSet) MissingRequired(required []string) []string {
	var missing []string
	for _, id := range required {
		if !s[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
