package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/queen-placement/genetic"
)

var (
	lightSquare = lipgloss.NewStyle().
			Background(lipgloss.Color("180")).
			Foreground(lipgloss.Color("0"))
	darkSquare = lipgloss.NewStyle().
			Background(lipgloss.Color("94")).
			Foreground(lipgloss.Color("0"))
)

// Plain renders the board as one text row per line, 'Q' for a queen and
// '.' for an empty square. Safe for logs and tests.
func Plain(c genetic.Chromosome) string {
	genes := c.Genes()
	n := len(genes)
	var sb strings.Builder
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if genes[row] == genetic.Gene(col) {
				sb.WriteByte('Q')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Styled renders a colored checkerboard with queen glyphs for terminals.
func Styled(c genetic.Chromosome) string {
	genes := c.Genes()
	n := len(genes)
	var sb strings.Builder
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cell := "  "
			if genes[row] == genetic.Gene(col) {
				cell = "♛ "
			}
			if (row+col)%2 == 0 {
				sb.WriteString(lightSquare.Render(cell))
			} else {
				sb.WriteString(darkSquare.Render(cell))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
