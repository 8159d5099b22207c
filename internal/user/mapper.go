package user

import "github.com/jwhulst/userbase/internal/database"

// FromCreateRequest translates the external create shape into a record
// ready for persistence. The id stays unset; the database assigns it.
func FromCreateRequest(req CreateRequest) *database.UserRecord {
	return &database.UserRecord{
		Name:  req.Name,
		Email: req.Email,
	}
}

// ToResponse translates a stored record into the external read shape.
func ToResponse(rec *database.UserRecord) Response {
	return Response{
		ID:    rec.ID,
		Name:  rec.Name,
		Email: rec.Email,
	}
}
