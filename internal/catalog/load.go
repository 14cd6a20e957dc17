package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/ssrdocs/internal/common"
)

// LoadCSV reads deliverables from a CSV table with a deliverable-name column
// and an optional team column ("Entregable", "Equipo"). A header row is
// detected by the name column title and skipped. Fully blank rows are
// dropped silently; a row carrying data but no name is a load-time error so
// a corrupted catalog never reaches the engine.
func LoadCSV(r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var items []Item
	line := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog csv: %w", err)
		}
		line++

		name := ""
		team := ""
		if len(rec) > 0 {
			name = strings.TrimSpace(rec[0])
		}
		if len(rec) > 1 {
			team = strings.TrimSpace(rec[1])
		}

		if line == 1 && strings.EqualFold(name, "Entregable") {
			continue
		}
		if name == "" && team == "" {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("catalog csv line %d: %w: missing deliverable name", line, common.ErrMalformedRow)
		}

		items = append(items, Item{Name: name, Team: team})
	}

	return items, nil
}

// LoadYAML reads a full catalog (items plus optional rules) from YAML.
// Items with blank names are dropped; when the document declares no rules,
// DefaultRules apply.
func LoadYAML(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("catalog yaml: %w", err)
	}

	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		it.Name = strings.TrimSpace(it.Name)
		it.Team = strings.TrimSpace(it.Team)
		if it.Name == "" {
			continue
		}
		items = append(items, it)
	}
	c.Items = items

	if len(c.Rules) == 0 {
		c.Rules = DefaultRules
	}
	return c, nil
}
