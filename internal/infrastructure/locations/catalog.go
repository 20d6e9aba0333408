// Package locations expone el catálogo embebido de países y estados.
package locations

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Storefront-api/internal/domain/entity"
)

//go:embed locations.yaml
var catalogYAML []byte

type countryDoc struct {
	entity.Country `yaml:",inline"`
	States         []entity.State `yaml:"states"`
}

// Catalog catálogo en memoria; inmutable después de Load.
type Catalog struct {
	countries []entity.Country
	states    map[string][]entity.State // por código de país
}

// Load parsea el YAML embebido.
func Load() (*Catalog, error) {
	return parse(catalogYAML)
}

func parse(data []byte) (*Catalog, error) {
	var doc struct {
		Countries []countryDoc `yaml:"countries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("locations: parse catálogo: %w", err)
	}
	c := &Catalog{states: make(map[string][]entity.State, len(doc.Countries))}
	for _, d := range doc.Countries {
		code := strings.ToUpper(d.Code)
		c.countries = append(c.countries, entity.Country{Code: code, Name: d.Name})
		states := make([]entity.State, 0, len(d.States))
		for _, s := range d.States {
			s.CountryCode = code
			states = append(states, s)
		}
		c.states[code] = states
	}
	return c, nil
}

// Countries devuelve una copia de la lista de países.
func (c *Catalog) Countries() []entity.Country {
	return append([]entity.Country(nil), c.countries...)
}

// States devuelve los estados del país; código desconocido → lista vacía.
func (c *Catalog) States(countryCode string) []entity.State {
	return append([]entity.State{}, c.states[strings.ToUpper(strings.TrimSpace(countryCode))]...)
}

// NormalizeState resuelve un código ("GJ") o nombre en cualquier capitalización
// al nombre canónico del estado.
func (c *Catalog) NormalizeState(name string) (string, bool) {
	fold := cases.Fold()
	key := fold.String(strings.Join(strings.Fields(name), " "))
	if key == "" {
		return "", false
	}
	for _, states := range c.states {
		for _, s := range states {
			if key == fold.String(s.Name) || key == fold.String(s.Code) {
				return s.Name, true
			}
		}
	}
	return "", false
}
