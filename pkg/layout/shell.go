package layout

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// PrebuiltVersion pins the FastUI prebuilt bundle loaded by the HTML shell.
const PrebuiltVersion = "0.0.24"

//go:embed shell.html
var shellSource string

var (
	shellOnce sync.Once
	shellTpl  *pongo2.Template
	shellErr  error

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func shellTemplate() (*pongo2.Template, error) {
	shellOnce.Do(func() {
		shellTpl, shellErr = pongo2.FromString(shellSource)
	})
	return shellTpl, shellErr
}

func plainText() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// sanitizeText strips any markup from configuration strings that end up in
// the HTML shell.
func sanitizeText(raw string) string {
	return strings.TrimSpace(plainText().Sanitize(raw))
}

// PrebuiltHTML renders the HTML shell for a page. The renderer bootstraps
// itself from the api_root_url meta tag, then fetches the component tree for
// whatever path it is on.
func (l *Layout) PrebuiltHTML(title, apiRootURL string) (string, error) {
	tpl, err := shellTemplate()
	if err != nil {
		return "", fmt.Errorf("layout: parse shell template: %w", err)
	}

	if strings.TrimSpace(title) == "" {
		title = l.opts.Title
	}

	out, err := tpl.Execute(pongo2.Context{
		"title":        sanitizeText(title),
		"version":      PrebuiltVersion,
		"favicon_url":  sanitizeText(l.opts.FaviconURL),
		"api_root_url": apiRootURL,
	})
	if err != nil {
		return "", fmt.Errorf("layout: render shell: %w", err)
	}
	return out, nil
}
