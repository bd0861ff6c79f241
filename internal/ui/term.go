package ui

import (
	"github.com/fatih/color"
)

// Color definitions for consistent styling across the UI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Success: green for committed changes
	colorSuccess = color.New(color.FgGreen)

	// Warnings: yellow for skipped or unplaceable items
	colorWarn = color.New(color.FgYellow)

	// Failures: red
	colorFail = color.New(color.FgRed)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatFail(s string) string {
	return colorFail.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
