//go:build integration

package api_test

import (
	"fmt"
	"testing"
	"time"
)

// Helper function to generate unique names
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@example.com", prefix, time.Now().UnixNano())
}

func registerUser(email string) TestResponse {
	return makeRequest("POST", "/register", map[string]string{
		"username": uniqueName("it_user"),
		"email":    email,
		"password": "Secret123!",
	}, "")
}

// session pulls the token and user id out of a register or login response
func (r TestResponse) session() (string, int64) {
	user, _ := r.Data["user"].(map[string]interface{})
	return r.GetString("token"), asInt(user["id"])
}

// openSlot returns the first available slot from the seeded schedule
func openSlot(t *testing.T) map[string]interface{} {
	t.Helper()

	resp := makeRequest("GET", "/available-slots", nil, "")
	if !resp.IsSuccess() {
		t.Fatalf("Failed to list slots: %s", resp.Message)
	}
	if len(resp.List) == 0 {
		t.Skip("no open slots; rerun cmd/seed")
	}
	return resp.List[0]
}

func bookingFor(slot map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"clinic_id":  asInt(slot["clinic_id"]),
		"service_id": asInt(slot["service_id"]),
		"date":       slot["date"],
		"time":       slot["time"],
		"notes":      "integration run",
	}
}

func countOf(t *testing.T, path string) int64 {
	t.Helper()

	resp := makeRequest("GET", path, nil, "")
	if !resp.IsSuccess() {
		t.Fatalf("Failed to read %s: %s", path, resp.Message)
	}
	return resp.GetInt("count")
}

func asInt(v interface{}) int64 {
	if f, ok := v.(float64); ok {
		return int64(f)
	}
	return 0
}
