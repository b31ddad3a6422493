package app

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/klabast/wb-services/aktivitaeten/internal/dom"
	"github.com/klabast/wb-services/aktivitaeten/internal/i18n"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

type pageData struct {
	Lang          string
	Title         string
	Heading       string
	Available     string
	SignupHeading string
	EmailLabel    string
	ActivityLabel string
	Placeholder   string
	SignupButton  string
}

type confirmData struct {
	Lang     string
	Title    string
	Prompt   string
	Activity string
	Email    string
	Yes      string
	No       string
}

// newDocument renders the page skeleton for tag and parses it into a document.
func newDocument(tag language.Tag, p *message.Printer) (*dom.Document, error) {
	data := pageData{
		Lang:          tag.String(),
		Title:         p.Sprintf(i18n.Title),
		Heading:       p.Sprintf(i18n.Heading),
		Available:     p.Sprintf(i18n.AvailableHeading),
		SignupHeading: p.Sprintf(i18n.SignupHeading),
		EmailLabel:    p.Sprintf(i18n.EmailLabel),
		ActivityLabel: p.Sprintf(i18n.ActivityLabel),
		Placeholder:   p.Sprintf(i18n.SelectPlaceholder),
		SignupButton:  p.Sprintf(i18n.SignupButton),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return nil, fmt.Errorf("render page skeleton: %w", err)
	}

	doc, err := dom.Parse(&buf)
	if err != nil {
		return nil, err
	}
	for _, id := range []string{ListID, SelectID, EmailID, MessageID, SignupForm} {
		if doc.ByID(id) == nil {
			return nil, fmt.Errorf("page skeleton lacks #%s", id)
		}
	}
	return doc, nil
}

// writeConfirmPage renders the removal confirmation page.
func writeConfirmPage(w io.Writer, tag language.Tag, p *message.Printer, activity, email string) error {
	return templates.ExecuteTemplate(w, "confirm.html", confirmData{
		Lang:     tag.String(),
		Title:    p.Sprintf(i18n.ConfirmTitle),
		Prompt:   p.Sprintf(i18n.ConfirmRemoval, email, activity),
		Activity: activity,
		Email:    email,
		Yes:      p.Sprintf(i18n.ConfirmYes),
		No:       p.Sprintf(i18n.ConfirmNo),
	})
}
