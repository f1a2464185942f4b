//go:build integration

package api_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFlow(t *testing.T) {
	slot := openSlot(t)
	booking := bookingFor(slot)

	// Book
	createResp := makeRequest("POST", "/appointments", booking, authToken)
	require.True(t, createResp.IsSuccess(), "Failed to book: %s", createResp.Message)
	assert.Equal(t, http.StatusCreated, createResp.Code)
	appointmentID := createResp.GetInt("id")
	require.NotZero(t, appointmentID)

	// Same slot again
	dupResp := makeRequest("POST", "/appointments", booking, authToken)
	assert.Equal(t, http.StatusBadRequest, dupResp.Code)
	assert.Equal(t, "Slot is not available", dupResp.Message)

	// The slot left the open list
	slotsResp := makeRequest("GET", fmt.Sprintf("/available-slots?clinic_id=%d&date=%s", booking["clinic_id"], booking["date"]), nil, "")
	require.True(t, slotsResp.IsSuccess())
	for _, s := range slotsResp.List {
		assert.False(t, asInt(s["service_id"]) == booking["service_id"] && s["time"] == booking["time"],
			"booked slot still listed")
	}

	// List own appointments
	listResp := makeRequest("GET", "/appointments", nil, authToken)
	require.True(t, listResp.IsSuccess())
	require.Len(t, listResp.List, 1)
	assert.Equal(t, "scheduled", listResp.List[0]["status"])
	assert.NotEmpty(t, listResp.List[0]["clinic_name"])

	ownResp := makeRequest("GET", fmt.Sprintf("/appointments/%d", userID), nil, authToken)
	assert.True(t, ownResp.IsSuccess())

	otherResp := makeRequest("GET", fmt.Sprintf("/appointments/%d", userID+1), nil, authToken)
	assert.Equal(t, http.StatusForbidden, otherResp.Code)

	// Cancel
	updateResp := makeRequest("PUT", fmt.Sprintf("/appointments/%d", appointmentID), map[string]string{
		"status": "cancelled",
	}, authToken)
	assert.True(t, updateResp.IsSuccess(), "Failed to cancel: %s", updateResp.Message)

	badStatus := makeRequest("PUT", fmt.Sprintf("/appointments/%d", appointmentID), map[string]string{
		"status": "lost",
	}, authToken)
	assert.Equal(t, http.StatusBadRequest, badStatus.Code)

	// Delete
	deleteResp := makeRequest("DELETE", fmt.Sprintf("/appointments/%d", appointmentID), nil, authToken)
	assert.True(t, deleteResp.IsSuccess())

	goneResp := makeRequest("DELETE", fmt.Sprintf("/appointments/%d", appointmentID), nil, authToken)
	assert.Equal(t, http.StatusNotFound, goneResp.Code)
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	// a fresh user keeps the listing below scoped to this test
	token, _ := registerUser(uniqueEmail("race")).session()
	require.NotEmpty(t, token)

	booking := bookingFor(openSlot(t))

	const attempts = 8
	results := make([]TestResponse, attempts)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = makeRequest("POST", "/appointments", booking, token)
		}(i)
	}
	close(start)
	wg.Wait()

	var booked []TestResponse
	for _, r := range results {
		if r.Code == http.StatusCreated {
			booked = append(booked, r)
			continue
		}
		assert.Equal(t, http.StatusBadRequest, r.Code, r.Message)
		assert.Equal(t, "Slot is not available", r.Message)
	}
	require.Len(t, booked, 1, "exactly one booking must win")

	listResp := makeRequest("GET", "/appointments", nil, token)
	require.True(t, listResp.IsSuccess())
	assert.Len(t, listResp.List, 1)

	// hand the slot back for later runs
	deleteResp := makeRequest("DELETE", fmt.Sprintf("/appointments/%d", booked[0].GetInt("id")), nil, token)
	assert.True(t, deleteResp.IsSuccess())
}

func TestBookingValidation(t *testing.T) {
	resp := makeRequest("POST", "/appointments", map[string]interface{}{
		"clinic_id":  1,
		"service_id": 1,
		"date":       "16-10-2026",
		"time":       "25:00",
	}, authToken)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	fields := map[string]bool{}
	for _, e := range resp.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["date"])
	assert.True(t, fields["time"])
}

func TestAppointmentsRequireToken(t *testing.T) {
	resp := makeRequest("GET", "/appointments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "Access token required", resp.Message)

	resp = makeRequest("GET", "/appointments", nil, "garbage")
	assert.Equal(t, http.StatusForbidden, resp.Code)
}
