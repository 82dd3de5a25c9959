package browse

import (
	"fmt"

	"github.com/muhammadheryan/patient-registration/model"
)

const MsgNoDocument = "No document uploaded"

// Expansion owns the expanded state of cards rendered by a parent.
type Expansion interface {
	IsExpanded(id uint64) bool
	Toggle(id uint64)
}

// ExpansionSet is the list page's Expansion: any number of cards may be open.
type ExpansionSet struct {
	open map[uint64]bool
}

func NewExpansionSet(ids ...uint64) *ExpansionSet {
	s := &ExpansionSet{open: make(map[uint64]bool, len(ids))}
	for _, id := range ids {
		s.open[id] = true
	}
	return s
}

func (s *ExpansionSet) IsExpanded(id uint64) bool { return s.open[id] }

func (s *ExpansionSet) Toggle(id uint64) {
	if s.open[id] {
		delete(s.open, id)
		return
	}
	s.open[id] = true
}

// Card is a collapsible patient summary. With a parent Expansion the card
// keeps no state of its own.
type Card struct {
	patient  model.PatientListItem
	parent   Expansion
	expanded bool
}

// NewCard binds a card to parent. A nil parent gives the card local state.
func NewCard(p model.PatientListItem, parent Expansion) *Card {
	return &Card{patient: p, parent: parent}
}

func (c *Card) Patient() model.PatientListItem { return c.patient }

func (c *Card) Title() string { return c.patient.FullName }

func (c *Card) Subtitle() string { return c.patient.Email }

func (c *Card) Expanded() bool {
	if c.parent != nil {
		return c.parent.IsExpanded(c.patient.ID)
	}
	return c.expanded
}

func (c *Card) Toggle() {
	if c.parent != nil {
		c.parent.Toggle(c.patient.ID)
		return
	}
	c.expanded = !c.expanded
}

// Detail is what an expanded card shows.
type Detail struct {
	Phone       string
	Email       string
	ID          string
	PhotoURL    string
	PhotoAlt    string
	Placeholder string
}

func (d Detail) HasPhoto() bool { return d.PhotoURL != "" }

func (c *Card) Detail() Detail {
	p := c.patient
	d := Detail{
		Phone: fmt.Sprintf("%s %s", p.PhoneCountryCode, p.PhoneNumber),
		Email: p.Email,
		ID:    fmt.Sprintf("#%d", p.ID),
	}
	if p.HasPhoto {
		d.PhotoURL = PhotoURL(p.ID)
		d.PhotoAlt = fmt.Sprintf("Document for %s", p.FullName)
	} else {
		d.Placeholder = MsgNoDocument
	}
	return d
}

// PhotoURL is the path of a patient's document photo.
func PhotoURL(id uint64) string {
	return fmt.Sprintf("/patients/%d/photo", id)
}
