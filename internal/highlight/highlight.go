// Package highlight defines the highlight tags attached to rendered cells,
// the pluggable classifier that assigns them, and the tag to style theme the
// renderer draws with.
package highlight

import "strings"

// Tag classifies a rendered cell for styling.
type Tag int

const (
	Normal Tag = iota
	NonPrint
	Comment
	Keyword
	String
	Number
	Selection
)

// Tags lists every tag in declaration order.
var Tags = []Tag{Normal, NonPrint, Comment, Keyword, String, Number, Selection}

// String returns the configuration key of the tag.
func (t Tag) String() string {
	switch t {
	case Normal:
		return "normal"
	case NonPrint:
		return "nonprint"
	case Comment:
		return "comment"
	case Keyword:
		return "keyword"
	case String:
		return "string"
	case Number:
		return "number"
	case Selection:
		return "selection"
	default:
		return "unknown"
	}
}

// ParseTag resolves a configuration key to a tag.
// "searchmatch" is accepted as an alias for Selection.
func ParseTag(s string) (Tag, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "searchmatch" {
		return Selection, true
	}
	for _, t := range Tags {
		if t.String() == key {
			return t, true
		}
	}
	return Normal, false
}

// Classifier assigns tags to the characters of one row.
// Implementations return one tag per rune of line, or nil when every rune is Normal.
type Classifier interface {
	Classify(line []rune) []Tag
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(line []rune) []Tag

// Classify calls f(line).
func (f ClassifierFunc) Classify(line []rune) []Tag {
	return f(line)
}

// Plain tags everything Normal.
var Plain Classifier = ClassifierFunc(func([]rune) []Tag { return nil })
