package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.German

	// Page
	message.SetString(lang, Title, "Aktivitäten")
	message.SetString(lang, Heading, "Aktivitäten der Schule")
	message.SetString(lang, AvailableHeading, "Verfügbare Aktivitäten")
	message.SetString(lang, SignupHeading, "Für eine Aktivität anmelden")
	message.SetString(lang, EmailLabel, "E-Mail")
	message.SetString(lang, ActivityLabel, "Aktivität")
	message.SetString(lang, SelectPlaceholder, "-- Aktivität auswählen --")
	message.SetString(lang, SignupButton, "Anmelden")

	// Cards
	message.SetString(lang, Schedule, "Termine:")
	message.SetString(lang, Spots, "Plätze:")
	message.SetString(lang, Participants, "Teilnehmende:")
	message.SetString(lang, RemoveLabel, "%s abmelden")
	message.SetString(lang, Loading, "Aktivitäten werden geladen...")
	message.SetString(lang, LoadFailed, "Fehler beim Laden der Aktivitäten.")
	message.SetString(lang, NoActivities, "Keine Aktivitäten vorhanden.")

	// Signup
	message.SetString(lang, SelectActivity, "Bitte wählen Sie eine Aktivität aus.")
	message.SetString(lang, EnterEmail, "Bitte geben Sie eine E-Mail-Adresse ein.")
	message.SetString(lang, SignupSucceeded, "Erfolgreich angemeldet!")
	message.SetString(lang, SignupFailed, "Fehler beim Anmelden.")

	// Removal
	message.SetString(lang, ConfirmTitle, "Abmeldung bestätigen")
	message.SetString(lang, ConfirmRemoval, "Soll %s wirklich von %s abgemeldet werden?")
	message.SetString(lang, ConfirmYes, "Ja, abmelden")
	message.SetString(lang, ConfirmNo, "Abbrechen")
	message.SetString(lang, RemovalSucceeded, "Teilnehmer entfernt.")
	message.SetString(lang, RemovalFailed, "Fehler beim Abmelden.")

	// Shell
	message.SetString(lang, ShellHelp, "Befehle: list | reload | signup <Aktivität> <E-Mail> | remove <Aktivität> <E-Mail> | help | quit")
	message.SetString(lang, ShellUnknown, "Unbekannter Befehl: %s")
	message.SetString(lang, ShellUsageSignup, "Aufruf: signup <Aktivität> <E-Mail>")
	message.SetString(lang, ShellUsageRemove, "Aufruf: remove <Aktivität> <E-Mail>")
	message.SetString(lang, ShellConfirmSuffix, " (j/N): ")
}
