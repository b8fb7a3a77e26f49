package components

import (
	"imgsort/internal/tui/styles"
)

type StatusBar struct {
	text  string
	err   bool
	theme styles.Theme
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	return &StatusBar{theme: theme}
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.err = false
}

// SetError shows text in the error style until the next SetText
func (s *StatusBar) SetError(text string) {
	s.text = text
	s.err = true
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	if s.err {
		return s.theme.Error.Render(s.text)
	}
	return s.theme.Status.Render(s.text)
}
