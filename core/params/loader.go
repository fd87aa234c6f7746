package params

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed data/*.yaml
var embedded embed.FS

// ErrNotFound is returned when no directory provides a table file.
var ErrNotFound = errors.New("parameter file not found")

var extensions = []string{".yaml", ".yml", ".json"}

// Loader resolves logical table names ("Santalucia2004nn", optionally with
// an .xml/.yaml/.json suffix) against a user data directory first and the
// embedded defaults second.
type Loader struct {
	dirs []fs.FS
}

// NewLoader returns a loader; dataDir may be empty.
func NewLoader(dataDir string) *Loader {
	var dirs []fs.FS
	if dataDir != "" {
		dirs = append(dirs, os.DirFS(dataDir))
	}
	return &Loader{dirs: append(dirs, EmbeddedFS())}
}

// EmbeddedFS is the file system of the embedded default tables.
func EmbeddedFS() fs.FS {
	sub, _ := fs.Sub(embedded, "data")
	return sub
}

// NewLoaderFS uses the given file systems in order, without the embedded
// defaults.
func NewLoaderFS(dirs ...fs.FS) *Loader {
	return &Loader{dirs: dirs}
}

// Load reads and decodes one table.
func (l *Loader) Load(name string) (*Table, error) {
	base := stem(name)
	for _, dir := range l.dirs {
		for _, ext := range extensions {
			data, err := fs.ReadFile(dir, base+ext)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("params: read %s%s: %w", base, ext, err)
			}
			return Decode(base, data)
		}
	}
	return nil, fmt.Errorf("%w: %s (provide %s.yaml with --data-dir)", ErrNotFound, base, base)
}

// LoadAll loads and merges the named tables; later names override.
func (l *Loader) LoadAll(names ...string) (*Table, error) {
	if len(names) == 0 {
		return nil, errors.New("params: no table names")
	}
	var out *Table
	for _, n := range names {
		t, err := l.Load(n)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = t
		} else {
			out = out.Merge(t)
		}
	}
	return out, nil
}

// Embedded lists the table names shipped with the module.
func Embedded() []string {
	entries, err := fs.ReadDir(embedded, "data")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, stem(e.Name()))
	}
	sort.Strings(out)
	return out
}

func stem(name string) string {
	name = path.Base(strings.TrimSpace(name))
	for _, ext := range append([]string{".xml"}, extensions...) {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
