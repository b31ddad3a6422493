package app

import (
	"net/url"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/klabast/wb-services/aktivitaeten/internal/activity"
	"github.com/klabast/wb-services/aktivitaeten/internal/dom"
	"github.com/klabast/wb-services/aktivitaeten/internal/i18n"
)

// renderActivities replaces the activity list and the select options with
// the contents of coll. The placeholder option is kept.
func (c *SyncClient) renderActivities(coll *activity.Collection) {
	list := c.doc.ByID(ListID)
	sel := c.doc.ByID(SelectID)

	dom.Clear(list)
	placeholder := dom.First(sel, dom.ByAttr("value", ""))
	dom.Clear(sel)
	if placeholder != nil {
		dom.RemoveAttr(placeholder, "selected")
		sel.AppendChild(placeholder)
	}

	if coll.Len() == 0 {
		list.AppendChild(c.paragraph("info", c.p.Sprintf(i18n.NoActivities)))
		return
	}

	for name, a := range coll.All() {
		list.AppendChild(c.card(name, a))

		opt := dom.Element(atom.Option, "value", name)
		dom.SetText(opt, name)
		sel.AppendChild(opt)
	}
}

func (c *SyncClient) card(name string, a *activity.Activity) *html.Node {
	card := dom.Element(atom.Div, "class", CardClass, AttrActivity, name)

	h := dom.Element(atom.H4)
	dom.SetText(h, name)

	desc := dom.Element(atom.P)
	dom.SetText(desc, a.Description)

	spots := dom.Element(atom.Span, "class", SpotsClass)
	dom.SetText(spots, a.Spots())

	list := dom.Element(atom.Ul, "class", ParticipantsClass)
	dom.Append(list, c.participantItems(name, a)...)

	section := dom.Element(atom.Div, "class", "participants-section", "aria-live", "polite")
	dom.Append(section, strong(c.p.Sprintf(i18n.Participants)), list)

	export := dom.Element(atom.A, "class", "export-link", "href", "/export?activity="+url.QueryEscape(name))
	dom.SetText(export, "CSV")

	dom.Append(card,
		h,
		desc,
		labelled(strong(c.p.Sprintf(i18n.Schedule)), dom.TextNode(" "+a.Schedule)),
		labelled(strong(c.p.Sprintf(i18n.Spots)), dom.TextNode(" "), spots),
		section,
		export,
	)
	return card
}

// participantItems builds one list entry per participant, each carrying a
// removal control.
func (c *SyncClient) participantItems(name string, a *activity.Activity) []*html.Node {
	items := make([]*html.Node, 0, len(a.Participants))
	for _, email := range a.Participants {
		li := dom.Element(atom.Li, "class", ParticipantClass, AttrEmail, email)

		span := dom.Element(atom.Span, "class", EmailClass)
		dom.SetText(span, email)

		form := dom.Element(atom.Form, "method", "post", "action", "/actions", "class", "remove-form")
		label := c.p.Sprintf(i18n.RemoveLabel, email)
		btn := dom.Element(atom.Button,
			"type", "submit",
			"class", RemoveClass,
			AttrAction, string(ActionRemove),
			AttrActivity, name,
			AttrEmail, email,
			"title", label,
			"aria-label", label,
		)
		dom.SetText(btn, "✖")
		dom.Append(form,
			hidden("action", string(ActionRemove)),
			hidden("activity", name),
			hidden("email", email),
			btn,
		)

		dom.Append(li, span, form)
		items = append(items, li)
	}
	return items
}

// refreshCard updates participant list and spot count of a single card. It
// reports false when the card is not rendered.
func (c *SyncClient) refreshCard(name string, a *activity.Activity) bool {
	card := c.findCard(name)
	if card == nil {
		return false
	}
	if list := dom.First(card, dom.ByClass(ParticipantsClass)); list != nil {
		dom.Replace(list, c.participantItems(name, a)...)
	}
	if spots := dom.First(card, dom.ByClass(SpotsClass)); spots != nil {
		dom.SetText(spots, a.Spots())
	}
	return true
}

// removeEntry drops the list entry of email from the named card.
func (c *SyncClient) removeEntry(name, email string) {
	card := c.findCard(name)
	if card == nil {
		return
	}
	for _, li := range dom.All(card, dom.ByClass(ParticipantClass)) {
		if dom.Attr(li, AttrEmail) == email {
			dom.Remove(li)
		}
	}
}

func (c *SyncClient) findCard(name string) *html.Node {
	return dom.First(c.doc.ByID(ListID), func(n *html.Node) bool {
		return dom.HasClass(n, CardClass) && dom.Attr(n, AttrActivity) == name
	})
}

func (c *SyncClient) showListText(class, text string) {
	dom.Replace(c.doc.ByID(ListID), c.paragraph(class, text))
}

func (c *SyncClient) paragraph(class, text string) *html.Node {
	var p *html.Node
	if class == "" {
		p = dom.Element(atom.P)
	} else {
		p = dom.Element(atom.P, "class", class)
	}
	dom.SetText(p, text)
	return p
}

// setForm mirrors the submitted values into the signup form so a failed
// submission keeps its input.
func (c *SyncClient) setForm(name, email string) {
	dom.SetAttr(c.doc.ByID(EmailID), "value", email)
	for _, opt := range dom.All(c.doc.ByID(SelectID), dom.ByTag(atom.Option)) {
		if name != "" && dom.Attr(opt, "value") == name {
			dom.SetAttr(opt, "selected", "")
		} else {
			dom.RemoveAttr(opt, "selected")
		}
	}
}

func (c *SyncClient) resetForm() {
	c.setForm("", "")
	dom.RemoveAttr(c.doc.ByID(EmailID), "value")
}

func strong(text string) *html.Node {
	s := dom.Element(atom.Strong)
	dom.SetText(s, text)
	return s
}

func labelled(children ...*html.Node) *html.Node {
	p := dom.Element(atom.P)
	dom.Append(p, children...)
	return p
}

func hidden(name, value string) *html.Node {
	return dom.Element(atom.Input, "type", "hidden", "name", name, "value", value)
}
