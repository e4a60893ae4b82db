// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/features"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for supported features and success states.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and unsupported features.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings and review classifications.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for section names, keys and paths.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorVerbose is light gray - used for supplementary details.
	ColorVerbose = lipgloss.Color("#9CA3AF")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// KeyStyle is for section names, keys and paths.
	KeyStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// VerboseStyle is for supplementary information.
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorVerbose)

	diagCodeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	successIcon = SuccessStyle.Render("✓")
	errorIcon   = ErrorStyle.Render("✗")
	warningIcon = WarningStyle.Render("!")
)

// statusStyle picks the style a classification is printed with.
func statusStyle(s features.Status) lipgloss.Style {
	switch s {
	case features.StatusSupported:
		return SuccessStyle
	case features.StatusNotSupported:
		return ErrorStyle
	case features.StatusIgnored:
		return SubtitleStyle
	default:
		return WarningStyle
	}
}
