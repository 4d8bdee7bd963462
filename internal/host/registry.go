// Package host models the node editor the pickers live in: node
// definitions, nodes with their widgets, and extensions that hook node
// creation.
package host

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	tea "github.com/charmbracelet/bubbletea"

	"folderpick/internal/errors"
	"folderpick/internal/log"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// InputDef is one input of a node definition
type InputDef struct {
	Name      string      `yaml:"name"`
	Type      string      `yaml:"type"`
	Default   interface{} `yaml:"default"`
	Options   []string    `yaml:"options,omitempty"`
	Min       *float64    `yaml:"min,omitempty"`
	Max       *float64    `yaml:"max,omitempty"`
	Multiline bool        `yaml:"multiline,omitempty"`
}

// NodeDef describes a node type
type NodeDef struct {
	Name     string     `yaml:"name"`
	Display  string     `yaml:"display"`
	Category string     `yaml:"category"`
	Inputs   []InputDef `yaml:"inputs"`
	Outputs  []string   `yaml:"outputs"`
}

// Catalog is the on-disk list of definitions
type Catalog struct {
	Nodes []NodeDef `yaml:"nodes"`
}

// Extension hooks creation of every node its matcher accepts
type Extension struct {
	Name    string
	Match   *Matcher
	Created Hook
}

// Registry holds node definitions and registered extensions
type Registry struct {
	defs  map[string]NodeDef
	order []string
	exts  []Extension
}

// NewRegistry creates a registry with the built-in catalog loaded
func NewRegistry() (*Registry, error) {
	r := &Registry{defs: map[string]NodeDef{}}
	if err := r.LoadCatalog(builtinCatalog); err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}
	return r, nil
}

// LoadCatalog adds the definitions in data, replacing any with the same
// name
func (r *Registry) LoadCatalog(data []byte) error {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	for _, def := range c.Nodes {
		if err := validateDef(def); err != nil {
			return err
		}
	}
	for _, def := range c.Nodes {
		if _, exists := r.defs[def.Name]; !exists {
			r.order = append(r.order, def.Name)
		}
		r.defs[def.Name] = def
	}
	return nil
}

// LoadCatalogDir loads every YAML file in dir. A missing directory is
// not an error.
func (r *Registry) LoadCatalogDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || (!strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml")) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		if err := r.LoadCatalog(data); err != nil {
			return fmt.Errorf("invalid catalog in %s: %w", path, err)
		}
		log.LogWithFields(log.F("file", path)).Debug("catalog loaded")
	}
	return nil
}

var inputTypes = map[string]bool{"STRING": true, "INT": true, "FLOAT": true, "BOOLEAN": true, "COMBO": true}

func validateDef(def NodeDef) error {
	if def.Name == "" {
		return errors.New("node name is required")
	}
	seen := map[string]bool{}
	for _, in := range def.Inputs {
		if in.Name == "" {
			return errors.Newf("node %q: input name is required", def.Name)
		}
		if seen[in.Name] {
			return errors.Newf("node %q: duplicate input %q", def.Name, in.Name)
		}
		seen[in.Name] = true
		if !inputTypes[in.Type] {
			return errors.Newf("node %q: input %q has unknown type %q", def.Name, in.Name, in.Type)
		}
		if in.Type == "COMBO" && len(in.Options) == 0 {
			return errors.Newf("node %q: combo %q has no options", def.Name, in.Name)
		}
	}
	return nil
}

// Def looks up a definition by name
func (r *Registry) Def(name string) (NodeDef, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Defs returns all definitions in load order
func (r *Registry) Defs() []NodeDef {
	out := make([]NodeDef, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// RegisterExtension adds an extension. Names must be unique.
func (r *Registry) RegisterExtension(ext Extension) error {
	if ext.Name == "" || ext.Created == nil {
		return errors.New("extension needs a name and a creation hook")
	}
	for _, e := range r.exts {
		if e.Name == ext.Name {
			return errors.Newf("extension %q already registered", ext.Name)
		}
	}
	r.exts = append(r.exts, ext)
	return nil
}

// Extensions names the extensions that hook nodes of type name
func (r *Registry) Extensions(name string) []string {
	def, ok := r.defs[name]
	if !ok {
		return nil
	}
	var out []string
	for _, e := range r.exts {
		if e.Match.Match(def) {
			out = append(out, e.Name)
		}
	}
	sort.Strings(out)
	return out
}

func (r *Registry) hook(def NodeDef) Hook {
	var h Hook
	for _, e := range r.exts {
		if e.Match.Match(def) {
			h = Chain(h, e.Created)
		}
	}
	return h
}

// CreateNode instantiates a node with its default widgets and runs the
// matching extensions' hooks in registration order
func (r *Registry) CreateNode(name string) (*Node, tea.Cmd, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, nil, errors.NewNodeError("unknown node type", name, errors.UnknownNodeType, nil)
	}

	n := NewNode(def.Name, def.Category)
	if def.Display != "" {
		n.Title = def.Display
	}
	for _, in := range def.Inputs {
		n.widgets = append(n.widgets, widgetFor(in))
	}

	var cmd tea.Cmd
	if h := r.hook(def); h != nil {
		cmd = h(n)
	}
	log.LogWithFields(log.F("node_type", def.Name), log.F("id", n.ID)).Debug("node created")
	return n, cmd, nil
}

// Rehook runs the creation hooks again, as happens when extensions are
// reloaded. Hooks guard their wiring with MarkWired.
func (r *Registry) Rehook(n *Node) tea.Cmd {
	def, ok := r.defs[n.Type]
	if !ok {
		return nil
	}
	if h := r.hook(def); h != nil {
		return h(n)
	}
	return nil
}

func widgetFor(in InputDef) *Widget {
	w := &Widget{Name: in.Name, Options: in.Options}
	if in.Min != nil {
		w.Min = *in.Min
	}
	if in.Max != nil {
		w.Max = *in.Max
	}

	switch in.Type {
	case "COMBO":
		w.Kind = KindCombo
		w.Value = fmt.Sprint(orDefault(in.Default, in.Options[0]))
	case "BOOLEAN":
		w.Kind = KindToggle
		b, _ := in.Default.(bool)
		w.Value = b
	case "INT":
		w.Kind = KindNumber
		w.Value = (&Widget{Value: in.Default}).Int()
	case "FLOAT":
		w.Kind = KindNumber
		w.Value = (&Widget{Value: in.Default}).Float()
	default:
		w.Kind = KindString
		w.Value = fmt.Sprint(orDefault(in.Default, ""))
	}
	return w
}

func orDefault(v, fallback interface{}) interface{} {
	if v == nil {
		return fallback
	}
	return v
}
