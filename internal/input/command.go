// Package input decodes raw terminal bytes into editor commands.
package input

import "fmt"

// Kind identifies a command.
type Kind int

const (
	Ignore Kind = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	MoveLeftWord
	MoveRightWord
	PageUp
	PageDown
	GoHome
	GoEnd
	Backspace
	BackspaceWord
	BackspaceLine
	Save
	Open
	Copy
	Cut
	Paste
	Refresh
	Quit
	Char
)

var kindNames = map[Kind]string{
	Ignore:        "ignore",
	MoveUp:        "move-up",
	MoveDown:      "move-down",
	MoveLeft:      "move-left",
	MoveRight:     "move-right",
	MoveLeftWord:  "move-left-word",
	MoveRightWord: "move-right-word",
	PageUp:        "page-up",
	PageDown:      "page-down",
	GoHome:        "go-home",
	GoEnd:         "go-end",
	Backspace:     "backspace",
	BackspaceWord: "backspace-word",
	BackspaceLine: "backspace-line",
	Save:          "save",
	Open:          "open",
	Copy:          "copy",
	Cut:           "cut",
	Paste:         "paste",
	Refresh:       "refresh",
	Quit:          "quit",
	Char:          "char",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Command is one decoded keypress. Ch is set only for Char.
type Command struct {
	Kind Kind
	Ch   rune
}

// Of returns a command of kind k.
func Of(k Kind) Command {
	return Command{Kind: k}
}

// CharOf returns a literal character command.
func CharOf(ch rune) Command {
	return Command{Kind: Char, Ch: ch}
}

func (c Command) String() string {
	if c.Kind == Char {
		return fmt.Sprintf("char(%q)", c.Ch)
	}
	return c.Kind.String()
}
