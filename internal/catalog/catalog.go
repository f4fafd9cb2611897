// Package catalog holds the static tables the account pages are built from:
// countries, interest categories and the field descriptors of each form.
package catalog

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lorrc/mentor-portal/internal/core/forms"
)

//go:embed countries.yaml categories.yaml forms.yaml
var files embed.FS

// Country pairs a code with its display name.
type Country struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type countryFile struct {
	Countries []Country `yaml:"countries"`
}

type categoryFile struct {
	Categories []string `yaml:"categories"`
}

type formFile struct {
	Signup               []forms.FieldDescriptor `yaml:"signup"`
	PasswordConfirmation []forms.FieldDescriptor `yaml:"passwordConfirmation"`
}

// Catalog is read-only after Load and safe for concurrent use.
type Catalog struct {
	countries  []Country
	byCode     map[string]string
	byName     map[string]string
	categories []string
	forms      formFile
}

// Load parses the embedded tables.
func Load() (*Catalog, error) {
	var cf countryFile
	if err := decode("countries.yaml", &cf); err != nil {
		return nil, err
	}
	var cat categoryFile
	if err := decode("categories.yaml", &cat); err != nil {
		return nil, err
	}
	var ff formFile
	if err := decode("forms.yaml", &ff); err != nil {
		return nil, err
	}

	c := &Catalog{
		countries:  cf.Countries,
		byCode:     make(map[string]string, len(cf.Countries)),
		byName:     make(map[string]string, len(cf.Countries)),
		categories: cat.Categories,
		forms:      ff,
	}
	for _, country := range cf.Countries {
		if _, dup := c.byCode[country.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate country code %q", country.Code)
		}
		c.byCode[country.Code] = country.Name
		c.byName[country.Name] = country.Code
	}
	sort.Slice(c.countries, func(i, j int) bool { return c.countries[i].Name < c.countries[j].Name })

	return c, nil
}

// MustLoad is Load for program start-up.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

func decode(name string, out any) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	return nil
}

// CodeToName returns the display name for code, or "" when unknown.
func (c *Catalog) CodeToName(code string) string {
	return c.byCode[code]
}

// NameToCode returns the code for a display name.
func (c *Catalog) NameToCode(name string) (string, bool) {
	code, ok := c.byName[name]
	return code, ok
}

// CountryNames returns the display names sorted alphabetically.
func (c *Catalog) CountryNames() []string {
	names := make([]string, len(c.countries))
	for i, country := range c.countries {
		names[i] = country.Name
	}
	return names
}

func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// SignupFields returns the descriptors of the signup form.
func (c *Catalog) SignupFields() []forms.FieldDescriptor {
	return append([]forms.FieldDescriptor(nil), c.forms.Signup...)
}

// PasswordConfirmationFields returns the descriptors of the profile edit gate.
func (c *Catalog) PasswordConfirmationFields() []forms.FieldDescriptor {
	return append([]forms.FieldDescriptor(nil), c.forms.PasswordConfirmation...)
}
