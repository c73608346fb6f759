// Package dirwalk provides a query plugin that lists filesystem entries
// matching a typed path.
//
// A query is recognized when it starts with "~" or the path separator.
// Matching entries become result items whose action opens the file or
// directory with the configured opener command.
package dirwalk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mobock/lumen/internal/icon"
	"github.com/mobock/lumen/internal/plugin/query"
	pub "github.com/mobock/lumen/pkg/plugin"
)

// defaultOpener is the command used to open selected entries.
const defaultOpener = "xdg-open"

// Plugin implements the query.Plugin interface for directory walking.
type Plugin struct {
	opener   string
	fileIcon string
	dirIcon  string

	icons *icon.Set
	home  string
}

// New creates a new directory walker plugin.
func New() *Plugin {
	home, _ := os.UserHomeDir()
	return &Plugin{
		opener: defaultOpener,
		icons:  &icon.Set{},
		home:   home,
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "dirwalk"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Walk directories and open the selected file or directory"
}

// Version returns the plugin version.
func (p *Plugin) Version() string {
	return "1.0.0"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.opener, "dirwalk.opener", defaultOpener, "Command used to open selected entries")
	cmd.Flags().StringVar(&p.fileIcon, "dirwalk.file-icon", "", "Override icon file for file entries")
	cmd.Flags().StringVar(&p.dirIcon, "dirwalk.directory-icon", "", "Override icon file for directory entries")
}

// Validate checks if the plugin has all required inputs configured.
func (p *Plugin) Validate() error {
	if p.opener == "" {
		return fmt.Errorf("dirwalk.opener must not be empty")
	}
	return nil
}

// GetFlagHelp returns help information for all plugin flags.
func (p *Plugin) GetFlagHelp() []pub.FlagHelp {
	return []pub.FlagHelp{
		{Name: "dirwalk.opener", Type: "string", Default: defaultOpener, Description: "Command used to open selected entries", Required: false},
		{Name: "dirwalk.file-icon", Type: "string", Default: "", Description: "Override icon file for file entries", Required: false},
		{Name: "dirwalk.directory-icon", Type: "string", Default: "", Description: "Override icon file for directory entries", Required: false},
	}
}

// Handle lists filesystem entries matching the typed path. Queries that do
// not look like a path yield no items and no error.
func (p *Plugin) Handle(_ context.Context, q pub.Query, _ query.HandleOptions) ([]pub.Item, error) {
	if !p.validPath(q.Raw) {
		return nil, nil
	}
	path := p.expandUser(q.Raw)

	p.icons.Overrides = map[icon.Kind]string{
		icon.KindFile:      p.fileIcon,
		icon.KindDirectory: p.dirIcon,
	}

	dir, base := filepath.Split(path)
	listAll := false

	var items []pub.Item

	// The full query may already name a file or directory.
	if info, err := os.Stat(path); err == nil {
		switch {
		case !info.IsDir():
			item, err := p.fileItem(path, base)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		case base != ".":
			dir = path
			if !strings.HasSuffix(dir, string(os.PathSeparator)) {
				dir += string(os.PathSeparator)
			}
			item, err := p.dirItem(dir)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			listAll = true
		}
	}

	// Add the entries of dir whose names extend the typed base. When the
	// query named the directory itself, every entry matches.
	entries, err := os.ReadDir(dir)
	if err != nil {
		// The parent may not exist yet while the user is still typing;
		// that is not an error, just no further results.
		return items, nil
	}
	for _, entry := range entries {
		name := entry.Name()
		if name == base {
			continue
		}
		if !listAll && !strings.HasPrefix(name, base) {
			continue
		}
		entryPath := filepath.Join(dir, name)
		if entry.IsDir() {
			item, err := p.dirItem(entryPath + string(os.PathSeparator))
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		} else {
			item, err := p.fileItem(entryPath, name)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}

	return items, nil
}

// fileItem builds the result entry for a file.
func (p *Plugin) fileItem(path, name string) (pub.Item, error) {
	iconPath, err := p.icons.Path(icon.KindFile)
	if err != nil {
		return pub.Item{}, err
	}
	return p.buildItem(path, fmt.Sprintf("Open file %s", name), iconPath), nil
}

// dirItem builds the result entry for a directory; path carries a trailing
// separator so completions keep walking.
func (p *Plugin) dirItem(path string) (pub.Item, error) {
	iconPath, err := p.icons.Path(icon.KindDirectory)
	if err != nil {
		return pub.Item{}, err
	}
	return p.buildItem(path, fmt.Sprintf("Open directory %s", p.contractUser(path)), iconPath), nil
}

func (p *Plugin) buildItem(path, actionText, iconPath string) pub.Item {
	display := p.contractUser(path)
	return pub.Item{
		Completion: display,
		Text:       display,
		Subtext:    actionText,
		IconPath:   iconPath,
		Actions: []pub.Action{
			{
				Kind:    pub.ActionExec,
				Text:    actionText,
				Payload: []string{p.opener, path},
			},
		},
	}
}

// validPath reports whether the query looks like a filesystem path.
func (p *Plugin) validPath(raw string) bool {
	if raw == "" {
		return false
	}
	return raw[0] == '~' || raw[0] == os.PathSeparator
}

// expandUser replaces a leading "~" with the home directory.
func (p *Plugin) expandUser(path string) string {
	if p.home == "" {
		return path
	}
	if path == "~" {
		return p.home
	}
	if strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		return filepath.Join(p.home, path[2:])
	}
	return path
}

// contractUser replaces the home directory prefix of a path with "~".
func (p *Plugin) contractUser(path string) string {
	if p.home == "" {
		return path
	}
	return strings.Replace(path, p.home, "~", 1)
}
