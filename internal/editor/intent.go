package editor

import (
	"errors"
	"fmt"
	"strings"
)

// IntentKind identifies a toolbar formatting operation.
type IntentKind uint8

const (
	IntentBold IntentKind = iota
	IntentItalic
	IntentUnderline
	IntentStrike
	IntentSubscript
	IntentSuperscript
	IntentAlignLeft
	IntentAlignCenter
	IntentAlignRight
	IntentJustify
	IntentIndent
	IntentOutdent
	IntentOrderedList
	IntentUnorderedList
	IntentHeading
	IntentFontFamily
	IntentFontSize
	IntentForeColor
	IntentBackColor
	IntentLink
	IntentSymbol
	IntentClearFormatting
	IntentUndo
	IntentRedo
	IntentCut
	IntentCopy
	IntentPaste
	intentCount
)

var intentNames = [intentCount]string{
	IntentBold:            "bold",
	IntentItalic:          "italic",
	IntentUnderline:       "underline",
	IntentStrike:          "strike",
	IntentSubscript:       "subscript",
	IntentSuperscript:     "superscript",
	IntentAlignLeft:       "align-left",
	IntentAlignCenter:     "align-center",
	IntentAlignRight:      "align-right",
	IntentJustify:         "justify",
	IntentIndent:          "indent",
	IntentOutdent:         "outdent",
	IntentOrderedList:     "ordered-list",
	IntentUnorderedList:   "unordered-list",
	IntentHeading:         "heading",
	IntentFontFamily:      "font-family",
	IntentFontSize:        "font-size",
	IntentForeColor:       "fore-color",
	IntentBackColor:       "back-color",
	IntentLink:            "link",
	IntentSymbol:          "symbol",
	IntentClearFormatting: "clear-formatting",
	IntentUndo:            "undo",
	IntentRedo:            "redo",
	IntentCut:             "cut",
	IntentCopy:            "copy",
	IntentPaste:           "paste",
}

// nativeCommands maps intents that are a plain 1:1 native primitive.
var nativeCommands = map[IntentKind]Command{
	IntentBold:            CmdBold,
	IntentItalic:          CmdItalic,
	IntentUnderline:       CmdUnderline,
	IntentStrike:          CmdStrikeThrough,
	IntentSubscript:       CmdSubscript,
	IntentSuperscript:     CmdSuperscript,
	IntentAlignLeft:       CmdJustifyLeft,
	IntentAlignCenter:     CmdJustifyCenter,
	IntentAlignRight:      CmdJustifyRight,
	IntentJustify:         CmdJustifyFull,
	IntentIndent:          CmdIndent,
	IntentOutdent:         CmdOutdent,
	IntentOrderedList:     CmdInsertOrderedList,
	IntentUnorderedList:   CmdInsertUnorderedList,
	IntentHeading:         CmdFormatBlock,
	IntentFontFamily:      CmdFontName,
	IntentForeColor:       CmdForeColor,
	IntentBackColor:       CmdHiliteColor,
	IntentClearFormatting: CmdRemoveFormat,
	IntentUndo:            CmdUndo,
	IntentRedo:            CmdRedo,
}

var ErrUnknownIntent = errors.New("unknown intent")

func (k IntentKind) String() string {
	if k < intentCount {
		return intentNames[k]
	}
	return fmt.Sprintf("IntentKind(%d)", uint8(k))
}

// NeedsArg reports whether the intent carries a required argument.
func (k IntentKind) NeedsArg() bool {
	switch k {
	case IntentHeading, IntentFontFamily, IntentFontSize, IntentForeColor,
		IntentBackColor, IntentLink, IntentSymbol:
		return true
	}
	return false
}

// Intent is one toolbar request. It is built per event and never stored.
type Intent struct {
	Kind IntentKind
	Arg  string
}

func (in Intent) String() string {
	if in.Arg == "" {
		return in.Kind.String()
	}
	return in.Kind.String() + "=" + in.Arg
}

// ParseIntent parses "name" or "name=arg", e.g. "bold", "align-right" or
// "font-size=18px".
func ParseIntent(s string) (Intent, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range intentNames {
		if n == name {
			return Intent{Kind: IntentKind(k), Arg: strings.TrimSpace(arg)}, nil
		}
	}
	return Intent{}, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}

// IntentNames lists every intent name in declaration order.
func IntentNames() []string {
	out := make([]string, len(intentNames))
	copy(out, intentNames[:])
	return out
}
