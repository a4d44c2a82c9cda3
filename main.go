package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"github.com/cj3636/gblame/internal/config"
	"github.com/cj3636/gblame/internal/export"
	"github.com/cj3636/gblame/internal/gitio"
	"github.com/cj3636/gblame/internal/logging"
	"github.com/cj3636/gblame/internal/tui"
)

var (
	showVersion  bool
	help         bool
	rev          string
	startLine    int
	gutterWidth  int
	themePreset  string
	highContrast bool
	configPath   string
	logFile      string
	logLevel     string
	fromStdin    bool
	exportFormat string
	exportFile   string
	exportCopy   bool
)

func init() {
	flag.BoolVarP(&showVersion, "version", "v", false, "Show version information")
	flag.StringVarP(&rev, "rev", "r", "", "Blame the file at this revision instead of the working tree")
	flag.IntVarP(&startLine, "line", "l", 1, "Place the cursor on this line")
	flag.IntVarP(&gutterWidth, "width", "w", 0, "Annotation gutter width in columns")
	flag.StringVar(&themePreset, "theme", "", "Color theme: default, solarized, or dracula")
	flag.BoolVar(&highContrast, "high-contrast", false, "Brighten the theme for low-contrast terminals")
	flag.StringVar(&configPath, "config", "", "Path to the config file")
	flag.StringVar(&logFile, "log-file", "", "Append debug logs to this file")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, or error")
	flag.BoolVar(&fromStdin, "contents", false, "Blame the content piped on stdin as the working copy of <file>")
	flag.StringVar(&exportFormat, "export-format", "", "Export the annotated file as html, markdown, or ansi without launching the TUI")
	flag.StringVar(&exportFile, "export-file", "", "Write the export to the provided file path")
	flag.BoolVar(&exportCopy, "export-copy", false, "Copy the export to your clipboard")
	flag.BoolVarP(&help, "help", "h", false, "Show help information")
	flag.Usage = usage
}

func usage() {
	fmt.Println("gblame - An interactive line attribution navigator built with Charm libraries")
	fmt.Println("")
	fmt.Println("Usage:")
	fmt.Println("  gblame [options] <file>")
	fmt.Println("")
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println("")
	fmt.Println("Examples:")
	fmt.Println("  gblame main.go")
	fmt.Println("  gblame -r v1.2.0 -l 120 main.go                # Blame at a tag, cursor on line 120")
	fmt.Println("  cat buffer.go | gblame --contents main.go      # Blame unsaved editor content")
	fmt.Println("  gblame --export-format html --export-file blame.html main.go")
	fmt.Println("")
	fmt.Println("Keyboard shortcuts:")
	fmt.Println("  j/↓    Cursor down")
	fmt.Println("  k/↑    Cursor up")
	fmt.Println("  d      Half page down")
	fmt.Println("  u      Half page up")
	fmt.Println("  g      Go to top")
	fmt.Println("  G      Go to bottom")
	fmt.Println("  tab    Switch pane")
	fmt.Println("  r      Reblame at the line's commit")
	fmt.Println("  p/~    Go to the parent revision")
	fmt.Println("  b      Back in visited revisions")
	fmt.Println("  f      Forward in visited revisions")
	fmt.Println("  enter  Commit detail")
	fmt.Println("  ?      Toggle help panel")
	fmt.Println("  q      Quit")
}

func parseExportFormat(raw string) (export.Format, error) {
	switch strings.ToLower(raw) {
	case "", string(export.FormatMarkdown), "md":
		return export.FormatMarkdown, nil
	case string(export.FormatHTML), "htm":
		return export.FormatHTML, nil
	case string(export.FormatANSI), "text":
		return export.FormatANSI, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

func readStdinLines() ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func main() {
	flag.Parse()

	if help {
		usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Println("gblame version 0.1.0")
		fmt.Println("An interactive line attribution navigator built with Charm libraries")
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	target := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file
	if gutterWidth > 0 {
		cfg.GutterWidth = gutterWidth
	}
	if themePreset != "" || highContrast {
		if themePreset != "" {
			cfg.ThemePreset = config.ThemePreset(themePreset)
		}
		cfg.HighContrast = cfg.HighContrast || highContrast
		cfg.Theme = config.ThemeForPreset(cfg.ThemePreset, cfg.HighContrast)
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	closeLogs, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLogs()

	git, err := gitio.NewClient(gitio.RealExecutor{}, filepath.Dir(target))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	relPath, err := git.RelPath(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var buffer []string
	if fromStdin {
		buffer, err = readStdinLines()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	session, err := tui.OpenSession(git, relPath, buffer, startLine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if rev != "" {
		if _, err := session.Reblame(context.Background(), rev, startLine); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if exportFormat != "" || exportFile != "" || exportCopy {
		runExport(session, relPath, cfg)
		return
	}

	model := tui.NewModel(session, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func runExport(session *tui.Session, relPath string, cfg *config.Config) {
	format, err := parseExportFormat(exportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	title := relPath
	if session.Rev() != "" {
		title = fmt.Sprintf("%s @ %s", relPath, session.Rev())
	}

	rendered, err := export.Render(session.Records(), format, export.Options{
		Title:       title,
		GutterWidth: cfg.GutterWidth,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting blame: %v\n", err)
		os.Exit(1)
	}

	if exportFile != "" {
		if err := os.WriteFile(exportFile, []byte(rendered), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing export: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "Blame saved to %s\n", exportFile)
	}

	if exportCopy {
		if err := export.CopyToClipboard(rendered, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error copying blame to clipboard: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Blame copied to clipboard.")
	}

	if exportFile == "" && !exportCopy {
		fmt.Println(rendered)
	}
}
