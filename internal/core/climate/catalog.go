package climate

import (
	"sync"
)

// Tier is the coarse trust ranking assigned to a record by its source.
type Tier string

const (
	TierHighest Tier = "highest"
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
)

// rank orders tiers for the waterfall lookup; unknown tiers sort last.
func (t Tier) rank() int {
	switch t {
	case TierHighest:
		return 0
	case TierHigh:
		return 1
	case TierMedium:
		return 2
	case TierLow:
		return 3
	}
	return 4
}

// Record is one reference entry of the climate database. Nutrition values are
// per 100 g; zero means the source did not provide them.
type Record struct {
	NameEN      string  `json:"name_en,omitempty"`
	NameDK      string  `json:"name_dk,omitempty"`
	NameFR      string  `json:"name_fr,omitempty"`
	CO2PerKg    float64 `json:"co2_per_kg"`
	SourceDB    string  `json:"source_db"`
	SourceID    string  `json:"source_id,omitempty"`
	Confidence  Tier    `json:"confidence"`
	Category    string  `json:"category,omitempty"`
	Subcategory string  `json:"subcategory,omitempty"`
	EnergyKJ    float64 `json:"energy_kj,omitempty"`
	FatG        float64 `json:"fat_g,omitempty"`
	CarbsG      float64 `json:"carbs_g,omitempty"`
	ProteinG    float64 `json:"protein_g,omitempty"`
}

// DisplayName prefers the English name, then Danish, then French.
func (r Record) DisplayName() string {
	if r.NameEN != "" {
		return r.NameEN
	}
	if r.NameDK != "" {
		return r.NameDK
	}
	return r.NameFR
}

// Catalog is an immutable snapshot of the climate database. All ingredients
// of one recipe resolution see the same snapshot; freshness requires an
// explicit Reload between batches, never mid-computation.
type Catalog struct {
	mu      sync.RWMutex
	records []Record
	names   []string
	byName  map[string][]int
}

// NewCatalog builds a catalog over the given records.
func NewCatalog(records []Record) *Catalog {
	c := &Catalog{}
	c.Reload(records)
	return c
}

// Reload replaces the snapshot wholesale.
func (c *Catalog) Reload(records []Record) {
	names := make([]string, 0, len(records))
	byName := make(map[string][]int, len(records))
	seen := make(map[string]bool, len(records))

	for i, rec := range records {
		// every language variant is searchable, so a Danish or French
		// recipe query can match too
		for _, name := range []string{rec.NameEN, rec.NameDK, rec.NameFR} {
			if name == "" {
				continue
			}
			byName[name] = append(byName[name], i)
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	c.mu.Lock()
	c.records = records
	c.names = names
	c.byName = byName
	c.mu.Unlock()
}

// Names returns all searchable names across languages and sources. The slice
// is shared and must be treated as read-only.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.names
}

// Len reports the number of records in the snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Resolve looks up a name against all language fields and returns the
// top-ranked record: best confidence tier first, then shorter display name,
// then lexicographic order. The boolean is false when no source knows the
// name; that is a normal outcome, not an error.
func (c *Catalog) Resolve(name string) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	indices, ok := c.byName[name]
	if !ok || len(indices) == 0 {
		return Record{}, false
	}

	best := c.records[indices[0]]
	for _, idx := range indices[1:] {
		if betterRecord(c.records[idx], best) {
			best = c.records[idx]
		}
	}
	return best, true
}

func betterRecord(a, b Record) bool {
	if a.Confidence.rank() != b.Confidence.rank() {
		return a.Confidence.rank() < b.Confidence.rank()
	}
	an, bn := a.DisplayName(), b.DisplayName()
	if len(an) != len(bn) {
		return len(an) < len(bn)
	}
	return an < bn
}
