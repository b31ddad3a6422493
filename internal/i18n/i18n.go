// Package i18n holds the UI strings in German and English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	Title              = "page.title"
	Heading            = "page.heading"
	AvailableHeading   = "page.available"
	SignupHeading      = "page.signup"
	EmailLabel         = "form.email"
	ActivityLabel      = "form.activity"
	SelectPlaceholder  = "form.select_placeholder"
	SignupButton       = "form.signup_button"
	Schedule           = "card.schedule"
	Spots              = "card.spots"
	Participants       = "card.participants"
	RemoveLabel        = "card.remove"
	Loading            = "list.loading"
	LoadFailed         = "list.load_failed"
	SelectActivity     = "signup.select_activity"
	EnterEmail         = "signup.enter_email"
	SignupSucceeded    = "signup.succeeded"
	SignupFailed       = "signup.failed"
	ConfirmRemoval     = "remove.confirm"
	RemovalSucceeded   = "remove.succeeded"
	RemovalFailed      = "remove.failed"
	ConfirmYes         = "remove.confirm_yes"
	ConfirmNo          = "remove.confirm_no"
	ConfirmTitle       = "remove.confirm_title"
	NoActivities       = "list.empty"
	ShellHelp          = "shell.help"
	ShellUnknown       = "shell.unknown"
	ShellUsageSignup   = "shell.usage_signup"
	ShellUsageRemove   = "shell.usage_remove"
	ShellConfirmSuffix = "shell.confirm_suffix"
)

// Default is the language used when none is configured.
var Default = language.German

var supported = []language.Tag{language.German, language.English}

var matcher = language.NewMatcher(supported)

// Parse resolves a language setting such as "de", "en-US" or "de-AT" to one
// of the supported tags.
func Parse(value string) language.Tag {
	if value == "" {
		return Default
	}
	tag, err := language.Parse(value)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
