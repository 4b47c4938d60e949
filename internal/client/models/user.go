// Package models defines the SIAP wire types (as the REST API returns
// them) and the client-side form types with their validation rules.
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Role is the account role assigned by the server. It is a closed set;
// anything outside it renders as a plain string but carries no rights.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account profile as returned by the API. The password never
// appears on reads.
type User struct {
	ID        string    `json:"_id"`
	NIP       string    `json:"nip"`
	FullName  string    `json:"fullName"`
	Title     string    `json:"title"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRef is a reference to an account embedded in other documents
// (createdBy, updatedBy, deletedBy). Depending on whether the server
// populated the reference it arrives either as a bare id string or as
// an object with the id and full name, so unmarshalling accepts both.
type UserRef struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	type ref UserRef
	var v ref
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = UserRef(v)
	return nil
}

// Label returns the best human-readable name available for the reference.
func (r *UserRef) Label() string {
	if r == nil {
		return ""
	}
	if r.FullName != "" {
		return r.FullName
	}
	return r.ID
}
