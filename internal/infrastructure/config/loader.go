package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics *PhysicsConfig
	Stages  []string
}

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadPhysics loads physics.json on top of DefaultPhysics
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	cfg := DefaultPhysics()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}

	return cfg, nil
}

// stageExts lists the stage formats in lookup order
var stageExts = []string{".json", ".yaml", ".yml", ".tmx"}

// LoadStage loads and validates a stage by name, trying each supported format
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	for _, ext := range stageExts {
		p := "stages/" + name + ext
		if _, err := fs.Stat(l.fsys, p); err != nil {
			continue
		}
		return l.LoadStageFile(p)
	}
	return nil, fmt.Errorf("failed to read stage %s: %w", name, fs.ErrNotExist)
}

// LoadStageFile loads and validates a stage file, picking the decoder by extension
func (l *Loader) LoadStageFile(p string) (*StageConfig, error) {
	var (
		cfg *StageConfig
		err error
	)
	switch strings.ToLower(path.Ext(p)) {
	case ".tmx":
		cfg, err = LoadTMX(l.fsys, p)
	case ".yaml", ".yml":
		cfg, err = l.decodeStage(p, yaml.Unmarshal)
	default:
		cfg, err = l.decodeStage(p, json.Unmarshal)
	}
	if err != nil {
		return nil, err
	}

	if cfg.ID == "" {
		cfg.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) decodeStage(p string, unmarshal func([]byte, any) error) (*StageConfig, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", p, err)
	}

	var cfg StageConfig
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", p, err)
	}
	return &cfg, nil
}

// LoadIndex returns the stage play order.
// Without stages/index.json every stage file is listed in name order.
func (l *Loader) LoadIndex() ([]string, error) {
	data, err := fs.ReadFile(l.fsys, "stages/index.json")
	if err == nil {
		var idx StageIndex
		if err := json.Unmarshal(data, &idx); err != nil {
			return nil, fmt.Errorf("failed to parse stages/index.json: %w", err)
		}
		if len(idx.Stages) == 0 {
			return nil, fmt.Errorf("%w: stages/index.json lists no stages", ErrInvalidStage)
		}
		return idx.Stages, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read stages/index.json: %w", err)
	}

	entries, err := fs.ReadDir(l.fsys, "stages")
	if err != nil {
		return nil, fmt.Errorf("failed to list stages: %w", err)
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(path.Ext(e.Name()))
		if !isStageExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no stage files found", ErrInvalidStage)
	}
	return names, nil
}

func isStageExt(ext string) bool {
	for _, e := range stageExts {
		if e == ext {
			return true
		}
	}
	return false
}

// LoadAll loads physics and the stage index
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	stages, err := l.LoadIndex()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics: physics,
		Stages:  stages,
	}, nil
}

// Catalog serves stages by play order
type Catalog struct {
	loader *Loader
	names  []string
}

// NewCatalog creates a catalog over the given stage names
func NewCatalog(loader *Loader, names []string) *Catalog {
	return &Catalog{loader: loader, names: names}
}

// Count returns the number of stages
func (c *Catalog) Count() int {
	return len(c.names)
}

// Name returns the stage name at index i
func (c *Catalog) Name(i int) string {
	if i < 0 || i >= len(c.names) {
		return ""
	}
	return c.names[i]
}

// Load reads stage i from disk. Stages are reread on every call so tile
// mutations from a previous attempt never leak into the next one.
func (c *Catalog) Load(i int) (*StageConfig, error) {
	if i < 0 || i >= len(c.names) {
		return nil, fmt.Errorf("%w: stage index %d out of range [0,%d)", ErrInvalidStage, i, len(c.names))
	}
	return c.loader.LoadStage(c.names[i])
}
