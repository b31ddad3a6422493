package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Page
	message.SetString(lang, Title, "Activities")
	message.SetString(lang, Heading, "School Activities")
	message.SetString(lang, AvailableHeading, "Available Activities")
	message.SetString(lang, SignupHeading, "Sign Up for an Activity")
	message.SetString(lang, EmailLabel, "Email")
	message.SetString(lang, ActivityLabel, "Activity")
	message.SetString(lang, SelectPlaceholder, "-- Select an activity --")
	message.SetString(lang, SignupButton, "Sign Up")

	// Cards
	message.SetString(lang, Schedule, "Schedule:")
	message.SetString(lang, Spots, "Spots:")
	message.SetString(lang, Participants, "Participants:")
	message.SetString(lang, RemoveLabel, "Unregister %s")
	message.SetString(lang, Loading, "Loading activities...")
	message.SetString(lang, LoadFailed, "Failed to load activities.")
	message.SetString(lang, NoActivities, "No activities available.")

	// Signup
	message.SetString(lang, SelectActivity, "Please select an activity.")
	message.SetString(lang, EnterEmail, "Please enter an email address.")
	message.SetString(lang, SignupSucceeded, "Signed up successfully!")
	message.SetString(lang, SignupFailed, "Failed to sign up.")

	// Removal
	message.SetString(lang, ConfirmTitle, "Confirm removal")
	message.SetString(lang, ConfirmRemoval, "Really remove %s from %s?")
	message.SetString(lang, ConfirmYes, "Yes, remove")
	message.SetString(lang, ConfirmNo, "Cancel")
	message.SetString(lang, RemovalSucceeded, "Participant removed.")
	message.SetString(lang, RemovalFailed, "Failed to remove participant.")

	// Shell
	message.SetString(lang, ShellHelp, "Commands: list | reload | signup <activity> <email> | remove <activity> <email> | help | quit")
	message.SetString(lang, ShellUnknown, "Unknown command: %s")
	message.SetString(lang, ShellUsageSignup, "Usage: signup <activity> <email>")
	message.SetString(lang, ShellUsageRemove, "Usage: remove <activity> <email>")
	message.SetString(lang, ShellConfirmSuffix, " (y/N): ")
}
