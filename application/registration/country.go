package registration

import (
	"fmt"
	"strings"
)

type Country struct {
	Name string
	Code string
}

// Countries is the dial code list offered by the picker.
var Countries = []Country{
	{"Argentina", "+54"},
	{"Australia", "+61"},
	{"Bolivia", "+591"},
	{"Brazil", "+55"},
	{"Canada", "+1"},
	{"Chile", "+56"},
	{"China", "+86"},
	{"Colombia", "+57"},
	{"Costa Rica", "+506"},
	{"Cuba", "+53"},
	{"Dominican Republic", "+1809"},
	{"Ecuador", "+593"},
	{"El Salvador", "+503"},
	{"France", "+33"},
	{"Germany", "+49"},
	{"Guatemala", "+502"},
	{"Honduras", "+504"},
	{"India", "+91"},
	{"Ireland", "+353"},
	{"Israel", "+972"},
	{"Italy", "+39"},
	{"Japan", "+81"},
	{"Mexico", "+52"},
	{"Netherlands", "+31"},
	{"New Zealand", "+64"},
	{"Nicaragua", "+505"},
	{"Panama", "+507"},
	{"Paraguay", "+595"},
	{"Peru", "+51"},
	{"Portugal", "+351"},
	{"Puerto Rico", "+1787"},
	{"South Africa", "+27"},
	{"South Korea", "+82"},
	{"Spain", "+34"},
	{"Sweden", "+46"},
	{"Switzerland", "+41"},
	{"United Kingdom", "+44"},
	{"United States", "+1"},
	{"Uruguay", "+598"},
	{"Venezuela", "+58"},
}

// CountryPicker is the searchable country code dropdown.
type CountryPicker struct {
	countries []Country
	open      bool
	query     string
}

func NewCountryPicker(countries []Country) *CountryPicker {
	return &CountryPicker{countries: countries}
}

func (p *CountryPicker) IsOpen() bool { return p.open }

func (p *CountryPicker) Open() { p.open = true }

func (p *CountryPicker) Toggle() { p.open = !p.open }

// ClickOutside closes the dropdown.
func (p *CountryPicker) ClickOutside() { p.open = false }

// Select closes the dropdown and clears the search. The form owns the value.
func (p *CountryPicker) Select(code string) {
	p.open = false
	p.query = ""
}

func (p *CountryPicker) Query() string { return p.query }

// Search filters by name or dial code, case-insensitively. An empty query
// returns the whole list.
func (p *CountryPicker) Search(query string) []Country {
	p.query = query
	return p.Options()
}

// Options returns the entries matching the current search.
func (p *CountryPicker) Options() []Country {
	q := strings.ToLower(strings.TrimSpace(p.query))
	if q == "" {
		return p.countries
	}
	out := make([]Country, 0)
	for _, c := range p.countries {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(c.Code, q) {
			out = append(out, c)
		}
	}
	return out
}

// Label renders a code as "Name (code)", or the bare code when unknown.
// The first listed country wins for shared codes.
func (p *CountryPicker) Label(code string) string {
	for _, c := range p.countries {
		if c.Code == code {
			return fmt.Sprintf("%s (%s)", c.Name, c.Code)
		}
	}
	return code
}
