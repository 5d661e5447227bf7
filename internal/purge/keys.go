package purge

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Toggle key.Binding
	Yes    key.Binding
	No     key.Binding
	Back   key.Binding
	Quit   key.Binding
	Abort  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab"), key.WithHelp("←/→", "toggle")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yap")),
		No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "nope")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Abort:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindings is the help.KeyMap for whichever mode is on screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (k keyMap) browseHelp() bindings {
	return bindings{k.Up, k.Down, k.Select, k.Quit}
}

func (k keyMap) confirmHelp() bindings {
	return bindings{k.Toggle, k.Select, k.Yes, k.No, k.Back}
}
