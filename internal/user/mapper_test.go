package user

import (
	"testing"

	"github.com/jwhulst/userbase/internal/database"
)

func TestFromCreateRequest(t *testing.T) {
	rec := FromCreateRequest(CreateRequest{Name: "Alice", Email: "alice@example.com"})

	if rec.ID != 0 {
		t.Fatalf("expected unset id, got %d", rec.ID)
	}
	if rec.Name != "Alice" || rec.Email != "alice@example.com" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestToResponse(t *testing.T) {
	resp := ToResponse(&database.UserRecord{ID: 7, Name: "Bob", Email: "bob@example.com"})

	if resp.ID != 7 || resp.Name != "Bob" || resp.Email != "bob@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
