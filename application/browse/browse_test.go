package browse

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/thirdparty/patientapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func patients() []model.PatientListItem {
	return []model.PatientListItem{
		{ID: 1, FullName: "Ana Perez", Email: "ana@gmail.com", PhoneCountryCode: "+598", PhoneNumber: "99123456", HasPhoto: true},
		{ID: 2, FullName: "Bo Diaz", Email: "bo@gmail.com", PhoneCountryCode: "+54", PhoneNumber: "1122334455"},
	}
}

func TestListView_Load(t *testing.T) {
	tests := []struct {
		name        string
		fetch       FetchFunc
		wantState   State
		wantMessage string
		wantCards   int
	}{
		{
			name:      "ready",
			fetch:     func(context.Context) ([]model.PatientListItem, error) { return patients(), nil },
			wantState: StateReady,
			wantCards: 2,
		},
		{
			name:      "empty",
			fetch:     func(context.Context) ([]model.PatientListItem, error) { return []model.PatientListItem{}, nil },
			wantState: StateEmpty,
		},
		{
			name: "server message kept verbatim",
			fetch: func(context.Context) ([]model.PatientListItem, error) {
				return nil, &patientapi.APIError{Status: 500, Message: "Internal server error"}
			},
			wantState:   StateFailed,
			wantMessage: "Internal server error",
		},
		{
			name: "network failure",
			fetch: func(context.Context) ([]model.PatientListItem, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
			wantState:   StateFailed,
			wantMessage: MsgFetchFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewListView()
			assert.Equal(t, StateLoading, v.State())

			v.Load(context.Background(), tt.fetch)

			assert.Equal(t, tt.wantState, v.State())
			assert.Equal(t, tt.wantMessage, v.Message())
			assert.Len(t, v.Cards(), tt.wantCards)
		})
	}
}

func TestListView_Retry(t *testing.T) {
	calls := 0
	fetch := func(context.Context) ([]model.PatientListItem, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("timeout")
		}
		return patients(), nil
	}

	v := NewListView()
	v.Retry(context.Background())
	assert.Zero(t, calls)

	v.Load(context.Background(), fetch)
	require.Equal(t, StateFailed, v.State())

	v.Retry(context.Background())
	assert.Equal(t, 2, calls)
	assert.Equal(t, StateReady, v.State())
	assert.Empty(t, v.Message())
}

func TestCard_ParentOwnsExpansion(t *testing.T) {
	set := NewExpansionSet()
	a := NewCard(patients()[0], set)
	b := NewCard(patients()[0], set)

	a.Toggle()
	assert.True(t, a.Expanded())
	assert.True(t, b.Expanded(), "cards for the same patient read the same source")

	set.Toggle(1)
	assert.False(t, a.Expanded())
}

func TestCard_LocalExpansion(t *testing.T) {
	c := NewCard(patients()[1], nil)
	assert.False(t, c.Expanded())
	c.Toggle()
	assert.True(t, c.Expanded())
	c.Toggle()
	assert.False(t, c.Expanded())
}

func TestListView_CardsShareExpansion(t *testing.T) {
	v := NewListView()
	v.Load(context.Background(), func(context.Context) ([]model.PatientListItem, error) { return patients(), nil })

	v.Cards()[1].Toggle()
	cards := v.Cards()
	assert.False(t, cards[0].Expanded())
	assert.True(t, cards[1].Expanded())
	assert.True(t, v.Expansion().IsExpanded(2))
}

func TestCard_Detail(t *testing.T) {
	withPhoto := NewCard(patients()[0], nil).Detail()
	assert.Equal(t, "+598 99123456", withPhoto.Phone)
	assert.Equal(t, "ana@gmail.com", withPhoto.Email)
	assert.Equal(t, "#1", withPhoto.ID)
	assert.True(t, withPhoto.HasPhoto())
	assert.Equal(t, "/patients/1/photo", withPhoto.PhotoURL)
	assert.Empty(t, withPhoto.Placeholder)

	without := NewCard(patients()[1], nil).Detail()
	assert.False(t, without.HasPhoto())
	assert.Equal(t, MsgNoDocument, without.Placeholder)
	assert.Equal(t, "#2", without.ID)
}

func TestImageViewer(t *testing.T) {
	var v ImageViewer
	assert.False(t, v.IsOpen())
	assert.False(t, v.HandleKey("Escape"))

	v.Open("/patients/1/photo", "Document for Ana Perez")
	assert.True(t, v.IsOpen())
	assert.True(t, v.ScrollLocked())
	assert.Equal(t, "/patients/1/photo", v.Src())

	assert.False(t, v.HandleKey("Enter"))
	assert.True(t, v.IsOpen())
	assert.True(t, v.HandleKey("Escape"))
	assert.False(t, v.IsOpen())
	assert.False(t, v.ScrollLocked())

	v.Open("/patients/1/photo", "")
	v.Backdrop()
	assert.False(t, v.IsOpen())

	v.Open("/patients/1/photo", "")
	v.Close(CloseButton)
	assert.False(t, v.IsOpen())
	assert.Empty(t, v.Src())
}
