package domain

import (
	"encoding/json"
	"fmt"
)

// MarshalUsers renders the collection in its persisted form: a JSON array
// indented with two spaces. A nil slice is written as [].
func MarshalUsers(users []UserRecord) ([]byte, error) {
	if users == nil {
		users = []UserRecord{}
	}
	b, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode users: %w", err)
	}
	return b, nil
}

// UnmarshalUsers parses a persisted collection. Stores treat an error here
// as corruption, not as an I/O failure.
func UnmarshalUsers(b []byte) ([]UserRecord, error) {
	var users []UserRecord
	if err := json.Unmarshal(b, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []UserRecord{}
	}
	return users, nil
}
