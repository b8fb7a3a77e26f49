package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandLine is the ":" prompt used to type folder paths
type CommandLine struct {
	input textinput.Model
}

func NewCommandLine() *CommandLine {
	input := textinput.New()
	input.Prompt = ":"
	input.Placeholder = "o <folder> | 1/2/3 <folder> | u | d | q"
	input.CharLimit = 4096
	return &CommandLine{input: input}
}

// Open focuses the prompt with initial text
func (c *CommandLine) Open(initial string) tea.Cmd {
	c.input.SetValue(initial)
	c.input.CursorEnd()
	return c.input.Focus()
}

// Close blurs the prompt and returns what was typed
func (c *CommandLine) Close() string {
	value := strings.TrimSpace(c.input.Value())
	c.input.Blur()
	c.input.Reset()
	return value
}

func (c *CommandLine) SetWidth(w int) {
	c.input.Width = max(w-2, 10)
}

func (c *CommandLine) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *CommandLine) View() string {
	return c.input.View()
}

// ParseCommand splits a command line into its verb and argument
func ParseCommand(line string) (verb, arg string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, ":"))
	verb, arg, _ = strings.Cut(line, " ")
	return verb, strings.TrimSpace(arg)
}
