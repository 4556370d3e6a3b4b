package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UnknownValue is the sentinel for identity fields that were not supplied.
const UnknownValue = "Unknown"

// FlexString accepts a JSON string, number, bool or null.
// Source exports are inconsistent about ages ("29" vs 29).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*s = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	if b {
		*s = "true"
	} else {
		*s = "false"
	}
	return nil
}

// RawUserRecord is one user as exported by the scraper.
type RawUserRecord struct {
	UserName      FlexString `json:"UserName,omitempty"`
	FullName      FlexString `json:"FullName,omitempty"`
	Age           FlexString `json:"Age,omitempty"`
	Gender        FlexString `json:"Gender,omitempty"`
	MaritalStatus FlexString `json:"MaritalStatus,omitempty"`
	Education     FlexString `json:"Education,omitempty"`
	Job           FlexString `json:"Job,omitempty"`
	Location      FlexString `json:"Location,omitempty"`
	Posts         []string   `json:"Posts"`
}

// DisplayName returns UserName, then FullName, then the Unknown sentinel.
func (r RawUserRecord) DisplayName() string {
	if name := strings.TrimSpace(string(r.UserName)); name != "" {
		return name
	}
	return orUnknown(r.FullName)
}

func (r RawUserRecord) AgeOrUnknown() string           { return orUnknown(r.Age) }
func (r RawUserRecord) GenderOrUnknown() string        { return orUnknown(r.Gender) }
func (r RawUserRecord) MaritalStatusOrUnknown() string { return orUnknown(r.MaritalStatus) }
func (r RawUserRecord) EducationOrUnknown() string     { return orUnknown(r.Education) }
func (r RawUserRecord) JobOrUnknown() string           { return orUnknown(r.Job) }
func (r RawUserRecord) LocationOrUnknown() string      { return orUnknown(r.Location) }

func orUnknown(v FlexString) string {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return UnknownValue
	}
	return s
}

// IsKnown reports whether v carries a real value.
func IsKnown(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != UnknownValue
}
