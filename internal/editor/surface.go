package editor

// Command names a native formatting primitive of the editable surface.
// The values match the identifiers a browser's execCommand understands.
type Command string

const (
	CmdBold                Command = "bold"
	CmdItalic              Command = "italic"
	CmdUnderline           Command = "underline"
	CmdStrikeThrough       Command = "strikeThrough"
	CmdSubscript           Command = "subscript"
	CmdSuperscript         Command = "superscript"
	CmdJustifyLeft         Command = "justifyLeft"
	CmdJustifyCenter       Command = "justifyCenter"
	CmdJustifyRight        Command = "justifyRight"
	CmdJustifyFull         Command = "justifyFull"
	CmdIndent              Command = "indent"
	CmdOutdent             Command = "outdent"
	CmdInsertOrderedList   Command = "insertOrderedList"
	CmdInsertUnorderedList Command = "insertUnorderedList"
	CmdFormatBlock         Command = "formatBlock"
	CmdForeColor           Command = "foreColor"
	CmdHiliteColor         Command = "hiliteColor"
	CmdFontName            Command = "fontName"
	CmdFontSize            Command = "fontSize"
	CmdInsertText          Command = "insertText"
	CmdInsertHTML          Command = "insertHTML"
	CmdRemoveFormat        Command = "removeFormat"
	CmdUndo                Command = "undo"
	CmdRedo                Command = "redo"
	CmdDelete              Command = "delete"
	CmdForwardDelete       Command = "forwardDelete"
)

// Range is a start/end boundary pair anchored to nodes of the surface.
// Values handed out by Selection.RangeAt are copies, not live ranges.
type Range interface {
	Collapsed() bool
	// Attached reports whether both boundary nodes are still part of the
	// surface's document.
	Attached() bool
}

// Selection is the host's active selection on the editable surface.
type Selection interface {
	RangeCount() int
	RangeAt(i int) Range
	RemoveAllRanges()
	AddRange(r Range)
	// String returns the plain-text value of the selected content.
	String() string
	// ContainsNode reports whether el lies within the first range. With
	// partial set, any overlap counts.
	ContainsNode(el Element, partial bool) bool
	// AnchorElement returns the nearest element enclosing the anchor
	// point, or nil when there is no range.
	AnchorElement() Element
}

// Element is a styled node of the surface.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
	RemoveAttr(name string)
	// SetStyle writes prop as a direct (inline) style override.
	SetStyle(prop StyleProp, value string)
}

// Surface is the editable region: it executes native primitives against
// the live selection and serializes its content.
type Surface interface {
	// Exec issues one native primitive. It reports false when the
	// primitive did not apply, mirroring execCommand.
	Exec(cmd Command, arg string) bool
	HTML() string
	SetHTML(markup string) error
	// PlainTextLen counts characters of the markup-free projection.
	PlainTextLen() int
	// Elements lists elements with the given tag in document order.
	Elements(tag string) []Element
	ComputedStyle(el Element) Style
}

// Host receives the results of editing operations.
type Host interface {
	ContentChanged(html string)
	Notify(msg string)
}

// Clipboard provides host clipboard integration for cut, copy and paste.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
