package picker

import (
	"fmt"
	"strings"
)

// View implements tea.Model
func (m Model) View() string {
	if m.cancelled || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Multiple Android devices detected. Please select one:"))
	b.WriteString("\n\n")

	for i, serial := range m.serials {
		line := fmt.Sprintf("%d. %s", i+1, serial)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	help := []string{
		keys.Up.Help().Key + " " + keys.Up.Help().Desc,
		keys.Down.Help().Key + " " + keys.Down.Help().Desc,
		fmt.Sprintf("1-%d pick", min(len(m.serials), 9)),
		keys.Select.Help().Key + " " + keys.Select.Help().Desc,
		keys.Quit.Help().Key + " " + keys.Quit.Help().Desc,
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	b.WriteString("\n")
	return b.String()
}
