// Package p4v reads the companion GUI client's settings and launches its
// helper tools.
package p4v

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
)

const (
	// SettingsDir is the GUI client's per-user directory under the home directory
	SettingsDir = ".p4qt"
	// SettingsFile is the GUI client's settings file name
	SettingsFile = "ApplicationSettings.xml"
)

// FileSystem abstracts file access for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	Open(path string) (io.ReadCloser, error)
}

// OSFileSystem implements FileSystem using the real OS.
type OSFileSystem struct{}

func (OSFileSystem) UserHomeDir() (string, error) { return os.UserHomeDir() }

func (OSFileSystem) Open(path string) (io.ReadCloser, error) { return os.Open(path) }

// Settings is the subset of the GUI settings this module uses.
type Settings struct {
	OpenWorkspaces    []string
	RecentConnections []string
	// DiffRunExternal is set when the user configured an external diff tool.
	DiffRunExternal bool
	DiffApplication string
}

// SettingsPath returns ~/.p4qt/ApplicationSettings.xml, or "" when the home
// directory is unknown.
func SettingsPath(fs FileSystem) string {
	home, err := fs.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, SettingsDir, SettingsFile)
}

// LoadSettings reads the settings file at path. A missing file yields empty
// Settings and no error.
func LoadSettings(fs FileSystem, path string) (*Settings, error) {
	if path == "" {
		return &Settings{}, nil
	}
	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, &SettingsError{Path: path, Cause: err}
	}
	defer f.Close()

	s, err := ParseSettings(f)
	if err != nil {
		return nil, &SettingsError{Path: path, Cause: err}
	}
	return s, nil
}

// element is a generic XML node; the settings file is a tree of
// typed elements identified by their varName attribute.
type element struct {
	XMLName  xml.Name
	VarName  string    `xml:"varName,attr"`
	Text     string    `xml:",chardata"`
	Children []element `xml:",any"`
}

func (e *element) child(tag, varName string) *element {
	if e == nil {
		return nil
	}
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local == tag && (varName == "" || c.VarName == varName) {
			return c
		}
	}
	return nil
}

// setting finds a child either named name or carrying varName=name.
func (e *element) setting(name string) *element {
	if e == nil {
		return nil
	}
	for i := range e.Children {
		c := &e.Children[i]
		if c.XMLName.Local == name || c.VarName == name {
			return c
		}
	}
	return nil
}

func (e *element) stringList() []string {
	if e == nil {
		return nil
	}
	var out []string
	for _, c := range e.Children {
		if c.XMLName.Local == "String" {
			out = append(out, strings.TrimSpace(c.Text))
		}
	}
	return out
}

// ParseSettings decodes the settings XML.
func ParseSettings(r io.Reader) (*Settings, error) {
	var root element
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, err
	}
	if root.XMLName.Local != "PropertyList" || root.VarName != "ApplicationSettings" {
		return nil, ErrUnexpectedRoot
	}

	s := &Settings{}
	conn := root.child("PropertyList", "Connection")
	s.OpenWorkspaces = conn.child("StringList", "OpenWorkspaces").stringList()
	s.RecentConnections = conn.child("StringList", "RecentConnections").stringList()

	if diff := root.child("Associations", "DiffAssociations"); diff != nil {
		if run := diff.setting("RunExternal"); run != nil {
			s.DiffRunExternal, _ = strconv.ParseBool(strings.TrimSpace(run.Text))
		}
		if app := diff.child("Association", "Default Association").setting("Application"); app != nil {
			s.DiffApplication = strings.TrimSpace(app.Text)
		}
	}
	return s, nil
}

// Connections returns every valid connection string from the open
// workspaces list followed by the recent connections list.
func (s *Settings) Connections() []connection.Connection {
	var out []connection.Connection
	for _, list := range [][]string{s.OpenWorkspaces, s.RecentConnections} {
		for _, text := range list {
			if c, ok := connection.ParseConnectionString(text); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// CompareTool returns the configured external diff application, or
// fallback when none is enabled.
func (s *Settings) CompareTool(fallback string) string {
	if s == nil || !s.DiffRunExternal || s.DiffApplication == "" {
		return fallback
	}
	if abs, err := filepath.Abs(s.DiffApplication); err == nil {
		return abs
	}
	return s.DiffApplication
}
