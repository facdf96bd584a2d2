package components

import "encoding/json"

// Component is implemented by every renderable node in the tree.
type Component interface {
	componentType() string
}

// PageTitle sets the document title without rendering visible output.
type PageTitle struct {
	Text string `json:"text"`
}

func (PageTitle) componentType() string { return "PageTitle" }

func (c PageTitle) MarshalJSON() ([]byte, error) {
	type alias PageTitle
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Text is a plain inline text node.
type Text struct {
	Text string `json:"text"`
}

func (Text) componentType() string { return "Text" }

func (c Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Heading renders an h1..h6 element.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level,omitempty"`
}

func (Heading) componentType() string { return "Heading" }

func (c Heading) MarshalJSON() ([]byte, error) {
	type alias Heading
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Paragraph renders a block of text.
type Paragraph struct {
	Text      string `json:"text"`
	ClassName string `json:"className,omitempty"`
}

func (Paragraph) componentType() string { return "Paragraph" }

func (c Paragraph) MarshalJSON() ([]byte, error) {
	type alias Paragraph
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Div groups child components.
type Div struct {
	Components []Component `json:"components"`
	ClassName  string      `json:"className,omitempty"`
}

func (Div) componentType() string { return "Div" }

func (c Div) MarshalJSON() ([]byte, error) {
	type alias Div
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Page wraps the main content area of a view.
type Page struct {
	Components []Component `json:"components"`
	ClassName  string      `json:"className,omitempty"`
}

func (Page) componentType() string { return "Page" }

func (c Page) MarshalJSON() ([]byte, error) {
	type alias Page
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Link renders a navigation anchor wrapping child components.
type Link struct {
	Components []Component `json:"components"`
	OnClick    Event       `json:"onClick,omitempty"`
	Active     string      `json:"active,omitempty"`
	ClassName  string      `json:"className,omitempty"`
}

func (Link) componentType() string { return "Link" }

func (c Link) MarshalJSON() ([]byte, error) {
	type alias Link
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Button renders a clickable button, optionally submitting an enclosing form.
type Button struct {
	Text      string `json:"text"`
	OnClick   Event  `json:"onClick,omitempty"`
	HTMLType  string `json:"htmlType,omitempty"`
	ClassName string `json:"className,omitempty"`
}

func (Button) componentType() string { return "Button" }

func (c Button) MarshalJSON() ([]byte, error) {
	type alias Button
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Navbar is the top navigation bar shared by all admin pages.
type Navbar struct {
	Title      string `json:"title,omitempty"`
	TitleEvent Event  `json:"titleEvent,omitempty"`
	StartLinks []Link `json:"startLinks"`
	EndLinks   []Link `json:"endLinks"`
}

func (Navbar) componentType() string { return "Navbar" }

func (c Navbar) MarshalJSON() ([]byte, error) {
	type alias Navbar
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Footer is the page footer shared by all admin pages.
type Footer struct {
	Links     []Link `json:"links"`
	ExtraText string `json:"extraText,omitempty"`
}

func (Footer) componentType() string { return "Footer" }

func (c Footer) MarshalJSON() ([]byte, error) {
	type alias Footer
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// DisplayLookup describes one table or details column: which row field to
// show and how.
type DisplayLookup struct {
	Field   string `json:"field"`
	Title   string `json:"title,omitempty"`
	Mode    string `json:"mode,omitempty"`
	OnClick Event  `json:"onClick,omitempty"`
}

// Table renders row data with the given column lookups.
type Table struct {
	Data          []map[string]any `json:"data"`
	Columns       []DisplayLookup  `json:"columns"`
	NoDataMessage string           `json:"noDataMessage,omitempty"`
}

func (Table) componentType() string { return "Table" }

func (c Table) MarshalJSON() ([]byte, error) {
	type alias Table
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Pagination renders page controls under a table. PageCount is derived from
// Total and PageSize so the renderer does not have to compute it.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
	PageCount int `json:"pageCount"`
}

func (Pagination) componentType() string { return "Pagination" }

func (c Pagination) MarshalJSON() ([]byte, error) {
	type alias Pagination
	if c.PageCount == 0 && c.PageSize > 0 {
		c.PageCount = (c.Total + c.PageSize - 1) / c.PageSize
		if c.PageCount < 1 {
			c.PageCount = 1
		}
	}
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// Details renders a single record as a field/value listing.
type Details struct {
	Data   map[string]any  `json:"data"`
	Fields []DisplayLookup `json:"fields"`
}

func (Details) componentType() string { return "Details" }

func (c Details) MarshalJSON() ([]byte, error) {
	type alias Details
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// FireEvent triggers an event as soon as the renderer mounts the component.
// Used to redirect after successful mutations.
type FireEvent struct {
	Event   Event  `json:"event"`
	Message string `json:"message,omitempty"`
}

func (FireEvent) componentType() string { return "FireEvent" }

func (c FireEvent) MarshalJSON() ([]byte, error) {
	type alias FireEvent
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}
