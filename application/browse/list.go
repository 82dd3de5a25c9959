// Package browse models the patient list page: the list load state, the
// expandable patient cards and the document image viewer.
package browse

import (
	"context"
	"errors"

	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/thirdparty/patientapi"
)

type State int

const (
	StateLoading State = iota
	StateFailed
	StateEmpty
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateFailed:
		return "failed"
	case StateEmpty:
		return "empty"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// MsgFetchFailed is shown when the list request fails without a server message.
const MsgFetchFailed = "Network error - could not fetch patients"

type FetchFunc func(ctx context.Context) ([]model.PatientListItem, error)

// ListView holds one page load of the patient list. Cards share the view's
// expansion set.
type ListView struct {
	state     State
	message   string
	patients  []model.PatientListItem
	fetch     FetchFunc
	expansion *ExpansionSet
}

func NewListView() *ListView {
	return &ListView{state: StateLoading, expansion: NewExpansionSet()}
}

// Load fetches the list once. A server-provided message is kept verbatim.
func (v *ListView) Load(ctx context.Context, fetch FetchFunc) {
	v.fetch = fetch
	v.state = StateLoading
	v.message = ""
	v.patients = nil

	patients, err := fetch(ctx)
	if err != nil {
		v.state = StateFailed
		v.message = MsgFetchFailed
		var apiErr *patientapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			v.message = apiErr.Message
		}
		return
	}

	v.patients = patients
	if len(patients) == 0 {
		v.state = StateEmpty
		return
	}
	v.state = StateReady
}

// Retry repeats the last Load. It is a no-op before the first Load.
func (v *ListView) Retry(ctx context.Context) {
	if v.fetch == nil {
		return
	}
	v.Load(ctx, v.fetch)
}

func (v *ListView) State() State { return v.state }

func (v *ListView) Message() string { return v.message }

func (v *ListView) Expansion() *ExpansionSet { return v.expansion }

// Cards returns one card per patient in list order, bound to the view's expansion set.
func (v *ListView) Cards() []*Card {
	cards := make([]*Card, 0, len(v.patients))
	for _, p := range v.patients {
		cards = append(cards, NewCard(p, v.expansion))
	}
	return cards
}
