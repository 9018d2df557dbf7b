package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"golang.org/x/sync/singleflight"
)

// maxUpwardSearchLevels limits how far FindProjectRoot walks up.
const maxUpwardSearchLevels = 10

// FileNames lists the config files read from each directory, lowest
// precedence first.
var FileNames = []string{"setup.cfg", "tox.ini", "pep8.ini", ".sqlfluff", "pyproject.toml"}

// ErrNotFound is returned when an explicitly requested config file is missing.
var ErrNotFound = errors.New("config file not found")

type fileLayer struct {
	path   string
	values map[string]any
}

// Loader discovers and layers configuration files. It is safe for
// concurrent use; parsed directories are cached until ClearCache.
type Loader struct {
	logger     *slog.Logger
	userDirs   []string
	noUser     bool
	envPrefix  string
	workingDir string
	extraFiles []string

	mu    sync.RWMutex
	cache map[string][]fileLayer
	group singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithUserConfigDir replaces the user config locations with dir.
func WithUserConfigDir(dir string) LoaderOption {
	return func(l *Loader) { l.userDirs = []string{dir} }
}

// WithoutUserConfig skips the user config layer.
func WithoutUserConfig() LoaderOption {
	return func(l *Loader) { l.noUser = true }
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// WithWorkingDir sets the directory project config discovery starts from.
func WithWorkingDir(dir string) LoaderOption {
	return func(l *Loader) { l.workingDir = dir }
}

// WithExtraConfig adds explicit config files layered after project files.
func WithExtraConfig(paths ...string) LoaderOption {
	return func(l *Loader) { l.extraFiles = append(l.extraFiles, paths...) }
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		logger:    slog.New(slog.DiscardHandler),
		envPrefix: DefaultEnvPrefix,
		cache:     make(map[string][]fileLayer),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.workingDir == "" {
		l.workingDir, _ = os.Getwd()
	}
	if l.userDirs == nil {
		l.userDirs = defaultUserDirs()
	}
	return l
}

func defaultUserDirs() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "sqlfluff"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// ClearCache drops all cached directory results.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cache = make(map[string][]fileLayer)
	l.mu.Unlock()
}

// ConfigDirs returns every directory whose config files affect path, in
// load order.
func (l *Loader) ConfigDirs(path string) ([]string, error) {
	dir, err := targetDir(path)
	if err != nil {
		return nil, err
	}
	var dirs []string
	if !l.noUser {
		dirs = append(dirs, l.userDirs...)
	}
	outer, err := filepath.Abs(l.workingDir)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	return append(dirs, intermediateDirs(outer, dir)...), nil
}

// projectRoot is the directory whose .env feeds a load over dirs.
func (l *Loader) projectRoot(dirs []string) string {
	if root := FindProjectRoot(dirs[len(dirs)-1]); root != "" {
		return root
	}
	return l.workingDir
}

// LoadForPath builds the configuration that applies to path.
func (l *Loader) LoadForPath(ctx context.Context, path string, overrides map[string]any) (*FluffConfig, error) {
	dirs, err := l.ConfigDirs(path)
	if err != nil {
		return nil, err
	}
	root := l.projectRoot(dirs)
	dotenv, err := readDotEnv(root)
	if err != nil {
		return nil, err
	}

	c := Defaults().Copy()
	userDirs := 0
	if !l.noUser {
		userDirs = len(l.userDirs)
	}
	for i, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		layers, err := l.dirLayers(dir)
		if err != nil {
			return nil, err
		}
		kind := SourceProject
		if i < userDirs {
			kind = SourceUser
		}
		for _, fl := range layers {
			if err := c.mergeExpanded(kind, fl.path, fl.values, dotenv); err != nil {
				return nil, err
			}
		}
	}

	for _, path := range l.extraFiles {
		values, err := loadExtraFile(path)
		if err != nil {
			return nil, err
		}
		if err := c.mergeExpanded(SourceFile, path, values, dotenv); err != nil {
			return nil, err
		}
	}

	if err := l.loadEnv(c, root, dotenv); err != nil {
		return nil, err
	}

	c, err = c.WithOverrides(overrides)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("config loaded", "path", path, "layers", len(c.sources))
	return c, nil
}

func (c *FluffConfig) mergeExpanded(kind SourceKind, path string, values map[string]any, dotenv map[string]string) error {
	values = maps.Copy(values)
	expandEnvVars(values, dotenv)
	return c.merge(kind, path, values)
}

func (l *Loader) loadEnv(c *FluffConfig, root string, dotenv map[string]string) error {
	fromFile, err := dotEnvLayer(l.envPrefix, dotenv)
	if err != nil {
		return err
	}
	if len(fromFile) > 0 {
		if err := c.merge(SourceEnv, filepath.Join(root, ".env"), fromFile); err != nil {
			return err
		}
	}

	n := 0
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, l.envPrefix) {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	if err := c.k.Load(envProvider(l.envPrefix), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	c.sources = append(c.sources, Source{Kind: SourceEnv, Keys: n})
	return nil
}

// dirLayers returns the parsed config files of dir, from cache when possible.
func (l *Loader) dirLayers(dir string) ([]fileLayer, error) {
	l.mu.RLock()
	layers, ok := l.cache[dir]
	l.mu.RUnlock()
	if ok {
		return layers, nil
	}

	v, err, _ := l.group.Do(dir, func() (any, error) {
		layers, err := l.readDir(dir)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[dir] = layers
		l.mu.Unlock()
		return layers, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]fileLayer), nil
}

func (l *Loader) readDir(dir string) ([]fileLayer, error) {
	var layers []fileLayer
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		values, err := parseFile(path, data)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			continue
		}
		l.logger.Debug("read config file", "path", path)
		layers = append(layers, fileLayer{path: path, values: values})
	}
	return layers, nil
}

func parseFile(path string, data []byte) (map[string]any, error) {
	if filepath.Base(path) == "pyproject.toml" {
		values, err := parsePyproject(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return values, nil
	}
	values, err := ParseCfg(data)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.File = path
			return nil, perr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// loadExtraFile reads an explicitly named config file, choosing the parser
// by extension.
func loadExtraFile(path string) (map[string]any, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		return k.Raw(), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return parseFile(path, data)
	}
}

func targetDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

// intermediateDirs lists outer and every directory down to inner. When
// inner is not below outer the walk starts at their common ancestor.
func intermediateDirs(outer, inner string) []string {
	for !isWithin(inner, outer) {
		parent := filepath.Dir(outer)
		if parent == outer {
			break
		}
		outer = parent
	}
	dirs := []string{outer}
	rel, err := filepath.Rel(outer, inner)
	if err != nil || rel == "." {
		return dirs
	}
	cur := outer
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		dirs = append(dirs, cur)
	}
	return dirs
}

func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// FindProjectRoot walks up from startDir looking for a directory holding
// a config file or a .git directory. Returns "" when none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if configExistsIn(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func configExistsIn(dir string) bool {
	for _, name := range append([]string{".git"}, FileNames...) {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
