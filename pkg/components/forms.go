package components

import "encoding/json"

// FormField is implemented by the input components a Form can contain.
type FormField interface {
	formFieldType() string
}

// FormFieldInput is a single-line input (text, number, email, date, ...).
type FormFieldInput struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Required    bool   `json:"required"`
	Locked      bool   `json:"locked,omitempty"`
	HTMLType    string `json:"htmlType,omitempty"`
	Initial     any    `json:"initial,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Description string `json:"description,omitempty"`
}

func (FormFieldInput) formFieldType() string { return "FormFieldInput" }

func (f FormFieldInput) MarshalJSON() ([]byte, error) {
	type alias FormFieldInput
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.formFieldType(), alias: alias(f)})
}

// FormFieldTextarea is a multi-line text input.
type FormFieldTextarea struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Required    bool   `json:"required"`
	Rows        int    `json:"rows,omitempty"`
	Initial     string `json:"initial,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Description string `json:"description,omitempty"`
}

func (FormFieldTextarea) formFieldType() string { return "FormFieldTextarea" }

func (f FormFieldTextarea) MarshalJSON() ([]byte, error) {
	type alias FormFieldTextarea
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.formFieldType(), alias: alias(f)})
}

// FormFieldBoolean is a checkbox input.
type FormFieldBoolean struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Required    bool   `json:"required"`
	Mode        string `json:"mode,omitempty"`
	Initial     bool   `json:"initial,omitempty"`
	Description string `json:"description,omitempty"`
}

func (FormFieldBoolean) formFieldType() string { return "FormFieldBoolean" }

func (f FormFieldBoolean) MarshalJSON() ([]byte, error) {
	type alias FormFieldBoolean
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.formFieldType(), alias: alias(f)})
}

// SelectOption is one choice inside a FormFieldSelect.
type SelectOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FormFieldSelect is a dropdown input with a fixed option set.
type FormFieldSelect struct {
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Required    bool           `json:"required"`
	Options     []SelectOption `json:"options"`
	Initial     string         `json:"initial,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Description string         `json:"description,omitempty"`
}

func (FormFieldSelect) formFieldType() string { return "FormFieldSelect" }

func (f FormFieldSelect) MarshalJSON() ([]byte, error) {
	type alias FormFieldSelect
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: f.formFieldType(), alias: alias(f)})
}

// Form renders a submittable form built from FormFields. SubmitURL receives
// the encoded form payload on submit.
type Form struct {
	SubmitURL     string      `json:"submitUrl"`
	Method        string      `json:"method,omitempty"`
	FormFields    []FormField `json:"formFields"`
	Footer        []Component `json:"footer,omitempty"`
	DisplayMode   string      `json:"displayMode,omitempty"`
	SubmitOnClick bool        `json:"submitOnClick,omitempty"`
}

func (Form) componentType() string { return "Form" }

func (c Form) MarshalJSON() ([]byte, error) {
	type alias Form
	return json.Marshal(struct {
		Type string `json:"type"`
		alias
	}{Type: c.componentType(), alias: alias(c)})
}

// FormError is a single field- or form-level validation message in the
// payload FastUI expects on HTTP 422 responses.
type FormError struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

// FormErrorPayload is the body of a 422 validation response.
type FormErrorPayload struct {
	Detail struct {
		Form []FormError `json:"form"`
	} `json:"detail"`
}

// NewFormErrorPayload wraps field errors in the envelope the renderer reads.
func NewFormErrorPayload(errs []FormError) FormErrorPayload {
	var payload FormErrorPayload
	payload.Detail.Form = errs
	return payload
}
