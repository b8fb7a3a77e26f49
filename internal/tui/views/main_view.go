package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"imgsort/internal/tui/common"
	"imgsort/pkg/types"

	"github.com/charmbracelet/lipgloss"
)

func RenderMainView(m common.ModelReader) string {
	var sb strings.Builder
	theme := m.Theme()
	snap := m.Snapshot()
	width, height := m.Size()

	sb.WriteString(renderTitle(m))
	sb.WriteString("\n\n")

	img := m.ImageView()
	if img == "" && snap.Source == "" {
		img = theme.Help.Render("Press " + m.Keys().OpenFolder.Help().Key + " or type :o <folder> to open a folder")
	}
	if rows := height - 6; width > 2 && rows > 0 {
		img = lipgloss.Place(width-2, rows, lipgloss.Center, lipgloss.Center, img)
	}
	sb.WriteString(img)
	sb.WriteString("\n")

	sb.WriteString(renderSlots(m))
	sb.WriteString("\n")
	sb.WriteString(renderInfo(m))
	sb.WriteString("\n")

	if m.Mode() == common.Command {
		sb.WriteString(m.CommandView())
	} else {
		sb.WriteString(m.StatusView())
	}
	sb.WriteString("\n")
	sb.WriteString(m.HelpView())

	return theme.App.Render(sb.String())
}

func renderTitle(m common.ModelReader) string {
	snap := m.Snapshot()
	title := m.Theme().Title.Render("imgsort")
	if snap.Source != "" {
		title += "  " + snap.Source
	}
	return title + "  " + m.Theme().Status.Render(fmt.Sprintf("%d left", snap.Remaining))
}

// renderSlots shows each destination with its key, dimmed when unusable
func renderSlots(m common.ModelReader) string {
	theme := m.Theme()
	snap := m.Snapshot()
	keys := m.Keys()
	bindings := [types.NumSlots]string{
		keys.SortOne.Help().Key,
		keys.SortTwo.Help().Key,
		keys.SortThree.Help().Key,
	}

	parts := make([]string, 0, types.NumSlots)
	for _, slot := range types.Slots {
		dir := snap.Destinations[slot]
		if dir == "" {
			dir = "(unset)"
		} else {
			dir = filepath.Base(dir)
		}
		text := fmt.Sprintf("[%s] %s: %s", bindings[slot], slot, dir)
		if snap.CanSort[slot] {
			parts = append(parts, theme.Selected.Render(text))
		} else {
			parts = append(parts, theme.Unselected.Render(text))
		}
	}
	return strings.Join(parts, "   ")
}

func renderInfo(m common.ModelReader) string {
	snap := m.Snapshot()
	if snap.Current == "" {
		return m.Theme().Unselected.Render("no image")
	}
	info := filepath.Base(snap.Current)
	if s := snap.Info.Summary(); s != "" {
		info += " · " + s
	}
	return m.Theme().Help.Render(info)
}
