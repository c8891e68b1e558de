package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/satishbabariya/simplesql/query/materialize"
	"github.com/satishbabariya/simplesql/query/value"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	InfoColor      = lipgloss.Color("#00D9FF")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	nullColor = color.New(color.Faint, color.Italic)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(SuccessStyle.Render("✓ " + message))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(WarningStyle.Render("⚠ " + message))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(InfoStyle.Render("ℹ " + message))
}

// PrintSecondary prints a dimmed line, e.g. the last statement.
func PrintSecondary(format string, args ...interface{}) {
	fmt.Println(SecondaryStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintTable prints a table using pterm
func PrintTable(headers []string, rows [][]string) error {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// TableRows renders records as table cells in column order.
func TableRows(columns []string, records []materialize.Record) [][]string {
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = FormatCell(rec[col])
		}
		rows[i] = row
	}
	return rows
}

// FormatCell renders one column value
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return nullColor.Sprint("NULL")
	case time.Time:
		return t.Format(value.TimeLayout)
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}

// PrintRecords prints records as a table followed by a row count.
func PrintRecords(columns []string, records []materialize.Record) error {
	if len(records) == 0 {
		PrintInfo("no rows")
		return nil
	}
	if err := PrintTable(columns, TableRows(columns, records)); err != nil {
		return err
	}
	PrintSecondary("%d row(s)", len(records))
	return nil
}

// StatementMarkdown describes a statement and its parameters as markdown.
func StatementMarkdown(sql, types string, args []any) string {
	var sb strings.Builder
	sb.WriteString("```sql\n")
	sb.WriteString(sql)
	sb.WriteString("\n```\n")
	if len(args) == 0 {
		return sb.String()
	}

	sb.WriteString("\n| # | type | value |\n|---|---|---|\n")
	for i, a := range args {
		code := "?"
		if i < len(types) {
			code = types[i : i+1]
		}
		fmt.Fprintf(&sb, "| %d | %s | `%v` |\n", i+1, code, a)
	}
	return sb.String()
}

// PrintMarkdown renders markdown content
func PrintMarkdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(content)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

// PrintBox prints content in a box
func PrintBox(title string, content string) {
	width := 80
	if w := pterm.GetTerminalWidth(); w > 0 && w < width {
		width = w
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(0, 1).
		Width(width).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				TitleStyle.Render(title),
				content,
			),
		)

	fmt.Println(box)
}

// PrintSpinner creates a spinner and returns it
func PrintSpinner(message string) (*pterm.SpinnerPrinter, error) {
	return pterm.DefaultSpinner.WithText(message).Start()
}
