package kb

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"leafcare/internal/priority"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Entry is a curated guidance record for one disease or condition category.
// Entries are loaded once and never mutated; callers must copy slices before
// modifying them.
type Entry struct {
	ID               string            `yaml:"id" json:"id"`
	Name             string            `yaml:"name" json:"name"`
	LabelAliases     []string          `yaml:"labelAliases" json:"labelAliases"`
	Summary          string            `yaml:"summary" json:"summary"`
	ImmediateActions []string          `yaml:"immediateActions" json:"immediateActions"`
	TreatmentOptions []string          `yaml:"treatmentOptions" json:"treatmentOptions"`
	Prevention       []string          `yaml:"prevention" json:"prevention"`
	WhenToEscalate   []string          `yaml:"whenToEscalate" json:"whenToEscalate"`
	DefaultPriority  priority.Priority `yaml:"defaultPriority" json:"defaultPriority"`
}

// Catalog is an ordered, read-only set of entries with one designated
// generic entry used when nothing matches.
type Catalog struct {
	entries []*Entry
	generic *Entry
}

type catalogFile struct {
	Generic string  `yaml:"generic"`
	Entries []Entry `yaml:"entries"`
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("kb: decode catalog: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("kb: catalog has no entries")
	}
	c := &Catalog{entries: make([]*Entry, 0, len(f.Entries))}
	seen := make(map[string]bool, len(f.Entries))
	for i := range f.Entries {
		e := f.Entries[i]
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return nil, fmt.Errorf("kb: entry %d has no id", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("kb: duplicate entry id %q", e.ID)
		}
		seen[e.ID] = true
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Summary) == "" {
			return nil, fmt.Errorf("kb: entry %q needs a name and summary", e.ID)
		}
		p, err := priority.ParseLoose(string(e.DefaultPriority))
		if err != nil {
			return nil, fmt.Errorf("kb: entry %q: %w", e.ID, err)
		}
		e.DefaultPriority = p
		c.entries = append(c.entries, &e)
		if e.ID == strings.TrimSpace(f.Generic) {
			c.generic = c.entries[len(c.entries)-1]
		}
	}
	if c.generic == nil {
		if strings.TrimSpace(f.Generic) != "" {
			return nil, fmt.Errorf("kb: generic entry %q not found", f.Generic)
		}
		c.generic = c.entries[0]
	}
	return c, nil
}

// Load reads a catalog from path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Parse(embeddedCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("kb: read %s: %w", path, err)
	}
	return Parse(data)
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the process-wide embedded catalog. It panics if the
// embedded file is invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog)
		if err != nil {
			panic(err)
		}
		defaultCat = c
	})
	return defaultCat
}

// Entries returns the entries in catalog order.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Generic returns the entry used when no alias matches.
func (c *Catalog) Generic() *Entry { return c.generic }

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (*Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (c *Catalog) Len() int { return len(c.entries) }
