package domain

// Venue is a (city, state) pair extracted from a jurisdiction clause.
type Venue struct {
	City  string `json:"city"`
	State string `json:"state"`
}

// DocumentContext is best-effort metadata extracted from the document text.
// Every field may be empty; absence is never an error.
type DocumentContext struct {
	// Parties are the contracting party names from the preamble.
	Parties []string `json:"parties,omitempty"`

	// PartyStates are incorporation states, parallel to Parties where known.
	PartyStates []string `json:"partyStates,omitempty"`

	// GoverningLaw is the full name of the governing-law state.
	GoverningLaw string `json:"governingLaw,omitempty"`

	// Venue is the exclusive-jurisdiction venue, when stated.
	Venue *Venue `json:"venue,omitempty"`
}
