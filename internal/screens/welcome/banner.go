package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/aleksandri0/mathpower/internal/ui/theme"
)

const bannerArt = `
 ╔╦╗╔═╗╔╦╗╦ ╦  ╔═╗╔═╗╦ ╦╔═╗╦═╗
 ║║║╠═╣ ║ ╠═╣  ╠═╝║ ║║║║║╣ ╠╦╝
 ╩ ╩╩ ╩ ╩ ╩ ╩  ╩  ╚═╝╚╩╝╚═╝╩╚═`

const bannerCompact = "M A T H P O W E R"

// RenderBanner returns the banner in the primary color, falling back to
// spaced letters below 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
