package app

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/klabast/wb-services/aktivitaeten/internal/dom"
)

// View is a plain text projection of the page.
type View struct {
	Cards   []CardView
	Options []string
	// Notice holds the list's paragraph text when no cards are shown, such
	// as the loading or error notice.
	Notice      string
	Message     string
	MessageKind MessageKind
	MessageOpen bool
}

// CardView is the projection of one activity card.
type CardView struct {
	Name         string
	Spots        string
	Participants []string
	Removable    []string
}

// Card returns the card with the given name.
func (v *View) Card(name string) (CardView, bool) {
	for _, c := range v.Cards {
		if c.Name == name {
			return c, true
		}
	}
	return CardView{}, false
}

func (c *SyncClient) view() *View {
	v := &View{}

	list := c.doc.ByID(ListID)
	for _, card := range dom.All(list, dom.ByClass(CardClass)) {
		cv := CardView{
			Name:  dom.Attr(card, AttrActivity),
			Spots: dom.Text(dom.First(card, dom.ByClass(SpotsClass))),
		}
		for _, span := range dom.All(card, dom.ByClass(EmailClass)) {
			cv.Participants = append(cv.Participants, dom.Text(span))
		}
		for _, btn := range dom.All(card, dom.ByAttr(AttrAction, string(ActionRemove))) {
			cv.Removable = append(cv.Removable, dom.Attr(btn, AttrEmail))
		}
		v.Cards = append(v.Cards, cv)
	}
	if len(v.Cards) == 0 {
		if p := dom.First(list, dom.ByTag(atom.P)); p != nil {
			v.Notice = dom.Text(p)
		}
	}

	for _, opt := range dom.All(c.doc.ByID(SelectID), dom.ByTag(atom.Option)) {
		if value := dom.Attr(opt, "value"); value != "" {
			v.Options = append(v.Options, value)
		}
	}

	msg := c.doc.ByID(MessageID)
	v.Message = dom.Text(msg)
	v.MessageOpen = !dom.HasClass(msg, HiddenClass)
	for _, kind := range []MessageKind{MessageInfo, MessageSuccess, MessageError} {
		if dom.HasClass(msg, string(kind)) {
			v.MessageKind = kind
		}
	}
	return v
}

// String formats the view for terminal output.
func (v *View) String() string {
	var sb strings.Builder
	if v.Notice != "" {
		sb.WriteString(v.Notice)
		sb.WriteString("\n")
	}
	for _, card := range v.Cards {
		sb.WriteString(card.Name)
		sb.WriteString(" [")
		sb.WriteString(card.Spots)
		sb.WriteString("]\n")
		for _, p := range card.Participants {
			sb.WriteString("  - ")
			sb.WriteString(p)
			sb.WriteString("\n")
		}
	}
	if v.MessageOpen && v.Message != "" {
		sb.WriteString("> ")
		sb.WriteString(v.Message)
		sb.WriteString("\n")
	}
	return sb.String()
}
