package httpapi_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/videorental/rental/core"
	. "github.com/AntonStoeckl/videorental/testutil/helper" //nolint:revive
)

func Test_Videos_CRUD(t *testing.T) {
	f := newFixture(t)

	// create
	rec := f.do(t, http.MethodPost, "/videos", map[string]any{
		"title":           "Alien",
		"release_date":    "1979-05-25",
		"total_inventory": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[videoBody](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Alien", created.Title)
	assert.Nil(t, created.AvailableInventory)

	// get
	rec = f.do(t, http.MethodGet, "/videos/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[videoBody](t, rec)
	require.NotNil(t, fetched.AvailableInventory)
	assert.Equal(t, 2, *fetched.AvailableInventory)

	// update
	rec = f.do(t, http.MethodPut, "/videos/"+created.ID.String(), map[string]any{
		"title":           "Aliens",
		"release_date":    "1986-07-18",
		"total_inventory": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Aliens", decode[videoBody](t, rec).Title)

	// list
	rec = f.do(t, http.MethodGet, "/videos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]videoBody](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, 3, listed[0].TotalInventory)

	// delete
	rec = f.do(t, http.MethodDelete, "/videos/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+created.ID.String()+`"}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/videos/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(core.KindNotFound), decode[errorBody](t, rec).Kind)
}

func Test_Videos_EmptyList(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/videos", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func Test_Videos_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		body    map[string]any
		message string
	}{
		{
			name:    "missing title",
			body:    map[string]any{"release_date": "1979-05-25", "total_inventory": 1},
			message: "title is required",
		},
		{
			name:    "missing total inventory",
			body:    map[string]any{"title": "Alien", "release_date": "1979-05-25"},
			message: "total_inventory is required",
		},
		{
			name:    "negative total inventory",
			body:    map[string]any{"title": "Alien", "release_date": "1979-05-25", "total_inventory": -1},
			message: "total_inventory must be at least 0",
		},
		{
			name:    "malformed release date",
			body:    map[string]any{"title": "Alien", "release_date": "25.05.1979", "total_inventory": 1},
			message: "release_date must be a date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)

			rec := f.do(t, http.MethodPost, "/videos", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[errorBody](t, rec)
			assert.Equal(t, string(core.KindValidation), body.Kind)
			assert.Contains(t, body.Message, tc.message)
		})
	}
}

func Test_Videos_MalformedRequests(t *testing.T) {
	f := newFixture(t)

	malformedID := f.do(t, http.MethodGet, "/videos/42", nil)
	malformedBody := f.do(t, http.MethodPost, "/videos", "not an object")
	unknownUpdate := f.do(t, http.MethodPut, "/videos/"+uuid.NewString(), map[string]any{
		"title": "Alien", "release_date": "1979-05-25", "total_inventory": 1,
	})

	assert.Equal(t, http.StatusBadRequest, malformedID.Code)
	assert.Equal(t, string(core.KindValidation), decode[errorBody](t, malformedID).Kind)
	assert.Equal(t, http.StatusBadRequest, malformedBody.Code)
	assert.Equal(t, string(core.KindValidation), decode[errorBody](t, malformedBody).Kind)
	assert.Equal(t, http.StatusNotFound, unknownUpdate.Code)
}

func Test_Videos_DeleteWithRentalHistory(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()
	video := GivenVideo(t, ctx, f.store, 1)
	customer := GivenCustomer(t, ctx, f.store)
	GivenOpenRental(t, ctx, f.store, video.ID, customer.ID, FixedNow, FixedNow.Add(core.DefaultLoanPeriod))

	// act
	rec := f.do(t, http.MethodDelete, "/videos/"+video.ID.String(), nil)

	// assert
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(core.KindEntityInUse), decode[errorBody](t, rec).Kind)
}

func Test_Videos_Rentals(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()
	video := GivenVideo(t, ctx, f.store, 2)
	customer := GivenCustomer(t, ctx, f.store)
	older := GivenOpenRental(t, ctx, f.store, video.ID, customer.ID, FixedNow, FixedNow.Add(core.DefaultLoanPeriod))
	newer := GivenOpenRental(t, ctx, f.store, video.ID, customer.ID, FixedNow.Add(time.Hour), FixedNow.Add(core.DefaultLoanPeriod))

	// act
	rec := f.do(t, http.MethodGet, "/videos/"+video.ID.String()+"/rentals", nil)
	unknown := f.do(t, http.MethodGet, "/videos/"+uuid.NewString()+"/rentals", nil)

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	rentals := decode[[]rentalBody](t, rec)
	require.Len(t, rentals, 2)
	assert.Equal(t, newer.ID, rentals[0].ID, "newest first")
	assert.Equal(t, older.ID, rentals[1].ID)
	assert.Nil(t, rentals[0].CheckedInAt)

	assert.Equal(t, http.StatusNotFound, unknown.Code)
}
