// Package export converts saved snippets to portable formats.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// Markdown renders editor markup as CommonMark. Formatting without a
// Markdown form (colors, fonts, alignment) is dropped and its text kept.
type Markdown struct {
	conv *converter.Converter
}

func NewMarkdown() *Markdown {
	return &Markdown{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (m *Markdown) Convert(markup string) (string, error) {
	out, err := m.conv.ConvertString(markup)
	if err != nil {
		return "", fmt.Errorf("export: convert: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// WriteFile converts markup and writes it to path, creating parent
// directories.
func (m *Markdown) WriteFile(path, markup string) error {
	out, err := m.Convert(markup)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: mkdir: %w", err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// FileName is the default file name for an exported snippet; id 0 names
// an unsaved draft.
func FileName(id int64) string {
	if id == 0 {
		return "draft.md"
	}
	return fmt.Sprintf("snippet-%d.md", id)
}
