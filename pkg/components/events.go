package components

import "encoding/json"

// Event is implemented by renderer events attached to links, buttons, and
// table cells.
type Event interface {
	eventType() string
}

// GoToEvent instructs the renderer to navigate to a URL.
type GoToEvent struct {
	URL   string            `json:"url,omitempty"`
	Query map[string]string `json:"query,omitempty"`
}

func (GoToEvent) eventType() string { return "go-to" }

func (e GoToEvent) MarshalJSON() ([]byte, error) {
	type alias GoToEvent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: e.eventType(), alias: alias(e)})
}

// BackEvent instructs the renderer to navigate back in history.
type BackEvent struct{}

func (BackEvent) eventType() string { return "back" }

func (e BackEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{Type: e.eventType()})
}

// PageEvent toggles a named page-level element, such as a modal.
type PageEvent struct {
	Name string `json:"name"`
}

func (PageEvent) eventType() string { return "page" }

func (e PageEvent) MarshalJSON() ([]byte, error) {
	type alias PageEvent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: e.eventType(), alias: alias(e)})
}
