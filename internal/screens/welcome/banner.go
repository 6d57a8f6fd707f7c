package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pylearn/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ██╗   ██╗██╗     ███████╗ █████╗ ██████╗ ███╗   ██╗
 ██╔══██╗╚██╗ ██╔╝██║     ██╔════╝██╔══██╗██╔══██╗████╗  ██║
 ██████╔╝ ╚████╔╝ ██║     █████╗  ███████║██████╔╝██╔██╗ ██║
 ██╔═══╝   ╚██╔╝  ██║     ██╔══╝  ██╔══██║██╔══██╗██║╚██╗██║
 ██║        ██║   ███████╗███████╗██║  ██║██║  ██║██║ ╚████║
 ╚═╝        ╚═╝   ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝`

const bannerCompact = "P Y L E A R N"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 62

// RenderBanner returns the PYLEARN banner styled in the primary color.
// Narrow terminals get a compact fallback.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
