package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sidebird/arcmark/internal/checker"
	"github.com/sidebird/arcmark/internal/exporter"
	"github.com/sidebird/arcmark/internal/flatten"
	"github.com/sidebird/arcmark/internal/importer"
	"github.com/sidebird/arcmark/internal/model"
	"github.com/sidebird/arcmark/internal/picker"
	"github.com/sidebird/arcmark/internal/search"
	"github.com/sidebird/arcmark/internal/sidebar"
	"github.com/sidebird/arcmark/internal/storage"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "export":
			var input, output string
			if len(os.Args) >= 3 {
				input = os.Args[2]
			}
			if len(os.Args) >= 4 {
				output = os.Args[3]
			}
			runExport(input, output)
			return
		case "preview":
			var input string
			if len(os.Args) >= 3 {
				input = os.Args[2]
			}
			runPreview(input)
			return
		case "archive":
			var input string
			if len(os.Args) >= 3 {
				input = os.Args[2]
			}
			runArchive(input)
			return
		case "search":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: arcmark search <query>\n")
				os.Exit(1)
			}
			runSearch(strings.Join(os.Args[2:], " "))
			return
		case "check":
			var input string
			if len(os.Args) >= 3 {
				input = os.Args[2]
			}
			runCheck(input)
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	printHelp()
}

func printHelp() {
	help := `arcmark - export Arc browser pinned tabs to bookmark HTML

Usage:
  arcmark export [sidebar.json] [output.html]   Convert pinned tabs to bookmark HTML
  arcmark preview [sidebar.json]                Browse the conversion result in a TUI
  arcmark archive [sidebar.json|file.html]      Save bookmarks into the local library
  arcmark search <query>                        Fuzzy-search the library and open a hit
  arcmark check [sidebar.json]                  Check bookmark URLs for dead links
  arcmark help                                  Show this help

When no sidebar.json is given, the default Arc location for this OS is used.
Output defaults to ~/Downloads/arc-bookmarks-YYYY-MM-DD.html.

Configuration:
  ~/.config/arcmark/config.json   root folder title, empty-folder policy
  ~/.config/arcmark/library.db    archived bookmark library
`
	fmt.Print(help)
}

// loadConfig loads the config, falling back to defaults on any failure.
func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigPath()
	if err != nil {
		cfg := storage.DefaultConfig()
		return &cfg
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		defaults := storage.DefaultConfig()
		return &defaults
	}
	return cfg
}

// defaultSidebarPath probes the OS-specific Arc data location.
func defaultSidebarPath() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Arc", "StorableSidebar.json"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			return "", errors.New("LOCALAPPDATA not set")
		}
		// The Arc package folder name varies per install
		matches, err := filepath.Glob(filepath.Join(localAppData, "Packages", "TheBrowserCompany.Arc*"))
		if err != nil {
			return "", err
		}
		for _, m := range matches {
			candidate := filepath.Join(m, "LocalCache", "Local", "Arc", "StorableSidebar.json")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		return "", errors.New("no Arc data folder found")
	default:
		return "", errors.New("no default Arc location on this OS; pass the path to StorableSidebar.json")
	}
}

// loadSpaces reads and flattens the sidebar file. A schema mismatch is
// recoverable: it warns and returns zero spaces so callers still produce
// valid output.
func loadSpaces(inputPath string, cfg *storage.Config) ([]model.Space, error) {
	if inputPath == "" {
		var err error
		inputPath, err = defaultSidebarPath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, err
	}

	sb, err := sidebar.Load(data)
	if err != nil {
		if errors.Is(err, sidebar.ErrSchemaMismatch) {
			fmt.Fprintf(os.Stderr, "Warning: no pinned items found in %s\n", inputPath)
			return []model.Space{}, nil
		}
		return nil, err
	}

	return flatten.Flatten(sb, flatten.Options{SkipEmptyFolders: cfg.SkipEmptyFolders}), nil
}

// runExport handles the export subcommand.
func runExport(inputPath, outputPath string) {
	cfg := loadConfig()

	spaces, err := loadSpaces(inputPath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading Arc data: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	html := exporter.ExportHTML(spaces, cfg.RootFolder)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	folders, bookmarks := model.Count(spaces)
	fmt.Printf("Exported %d spaces, %d folders, %d bookmarks to %s\n",
		len(spaces), folders, bookmarks, outputPath)
}

// runPreview handles the preview subcommand.
func runPreview(inputPath string) {
	cfg := loadConfig()

	spaces, err := loadSpaces(inputPath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading Arc data: %v\n", err)
		os.Exit(1)
	}

	entries := search.Collect(spaces)
	if len(entries) == 0 {
		fmt.Println("No pinned bookmarks to preview")
		return
	}

	p := picker.New("Pinned bookmarks", entries, "")
	program := tea.NewProgram(p, tea.WithAltScreen())
	finalModel, err := program.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running preview: %v\n", err)
		os.Exit(1)
	}

	finalPicker := finalModel.(picker.Picker)
	if entry := finalPicker.SelectedEntry(); entry != nil {
		openURL(entry.URL)
	}
}

// runArchive handles the archive subcommand. The input may be a sidebar
// JSON file or a previously exported bookmarks HTML file.
func runArchive(inputPath string) {
	cfg := loadConfig()

	var spaces []model.Space
	var err error
	if strings.HasSuffix(strings.ToLower(inputPath), ".html") {
		spaces, err = loadExportedHTML(inputPath)
	} else {
		spaces, err = loadSpaces(inputPath, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading bookmarks: %v\n", err)
		os.Exit(1)
	}

	libraryPath, err := storage.DefaultLibraryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting library path: %v\n", err)
		os.Exit(1)
	}
	library, err := storage.NewLibrary(libraryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		os.Exit(1)
	}
	defer library.Close()

	added, skipped, err := library.Archive(spaces)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error archiving bookmarks: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Archived %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

func loadExportedHTML(path string) ([]model.Space, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return importer.ParseHTMLBookmarks(file)
}

// runSearch handles the search subcommand: fuzzy-search the archived
// library, open a single hit directly, pick among several.
func runSearch(query string) {
	libraryPath, err := storage.DefaultLibraryPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting library path: %v\n", err)
		os.Exit(1)
	}
	library, err := storage.NewLibrary(libraryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening library: %v\n", err)
		os.Exit(1)
	}
	defer library.Close()

	archived, err := library.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading library: %v\n", err)
		os.Exit(1)
	}

	entries := search.CollectLibrary(archived)
	results := search.Fuzzy(entries, query)

	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		return
	}

	var selected *search.Entry
	if len(results) == 1 {
		selected = &results[0].Entry
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New("Library", entries, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedEntry()
	}

	if selected != nil {
		openURL(selected.URL)
	}
}

// runCheck handles the check subcommand.
func runCheck(inputPath string) {
	cfg := loadConfig()

	spaces, err := loadSpaces(inputPath, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading Arc data: %v\n", err)
		os.Exit(1)
	}

	var bookmarks []model.Bookmark
	for _, space := range spaces {
		bookmarks = append(bookmarks, space.AllBookmarks()...)
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks to check")
		return
	}

	fmt.Printf("Checking %d bookmarks...\n", len(bookmarks))
	results := checker.CheckURLs(bookmarks, 8, 10*time.Second, cfg.CheckExcludeDomains,
		func(completed, total int) {
			fmt.Printf("\r%d/%d", completed, total)
		})
	fmt.Println()

	healthy := 0
	for _, r := range results {
		switch r.Status {
		case checker.Healthy:
			healthy++
		case checker.Dead:
			fmt.Printf("DEAD        %-40s %s (%d)\n", r.Bookmark.Title, r.Bookmark.URL, r.StatusCode)
		case checker.Unreachable:
			fmt.Printf("UNREACHABLE %-40s %s (%s)\n", r.Bookmark.Title, r.Bookmark.URL, r.Error)
		}
	}
	fmt.Printf("%d healthy, %d with problems\n", healthy, len(results)-healthy)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
