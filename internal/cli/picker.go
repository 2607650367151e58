package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/storyswift/pkg/errors"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// maxSearchDepth bounds how deep findDescriptors looks below the root.
const maxSearchDepth = 6

// skippedDirs are never searched for descriptors.
var skippedDirs = map[string]bool{
	"Pods":         true,
	"Carthage":     true,
	"DerivedData":  true,
	"node_modules": true,
	"build":        true,
}

// descriptorFile is one candidate shown by the picker.
type descriptorFile struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// findDescriptors lists .storyboard and .xib files below root, sorted by
// path. Hidden directories and dependency folders are skipped.
func findDescriptors(root string) ([]descriptorFile, error) {
	var files []descriptorFile
	base := strings.Count(filepath.Clean(root), string(filepath.Separator))

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skippedDirs[name]) {
				return filepath.SkipDir
			}
			if strings.Count(filepath.Clean(path), string(filepath.Separator))-base >= maxSearchDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if errors.ValidateDescriptorPath(path) != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, descriptorFile{Path: path, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	slices.SortFunc(files, func(a, b descriptorFile) int { return strings.Compare(a.Path, b.Path) })
	return files, err
}

// pickDescriptor asks the user to choose a descriptor below root.
// It returns "" when the user quits without choosing.
func pickDescriptor(root string) (string, error) {
	files, err := findDescriptors(root)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no .storyboard or .xib files found in %s; pass a file path", root)
	}

	final, err := tea.NewProgram(newPickerModel(files), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", fmt.Errorf("file picker: %w", err)
	}
	if m, ok := final.(pickerModel); ok && m.Selected != "" {
		return m.Selected, nil
	}
	return "", nil
}

// =============================================================================
// pickerModel - Interactive descriptor selection
// =============================================================================

// pickerModel is the bubbletea model for choosing a descriptor file.
type pickerModel struct {
	Files    []descriptorFile
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

func newPickerModel(files []descriptorFile) pickerModel {
	return pickerModel{Files: files, Height: 15}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Files)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Files[m.Cursor].Path
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Storyboard or Xib"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ convert  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Files))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Files[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		kind := strings.TrimPrefix(filepath.Ext(f.Path), ".")
		rows = append(rows, []string{cursor, f.Path, kind, formatSize(f.Size), formatRelativeTime(f.ModTime)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "File", "Kind", "Size", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Files))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
