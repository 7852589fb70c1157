// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

// Keys of the session record.
const (
	KeyStudentID = "student_id"
	KeyName      = "student_name"
	KeyMajor     = "student_major"
	KeyGPA       = "student_gpa"
	KeyLevel     = "selected_level"
)

// Keys lists every session record key in the order they are cleared.
var Keys = []string{KeyStudentID, KeyName, KeyMajor, KeyGPA, KeyLevel}

// Defaults applied when a cached profile field is absent.
const (
	DefaultName  = "Student"
	DefaultMajor = "Computer Science"
	DefaultGPA   = "3.5"
	DefaultLevel = "3"
)

// Record is a snapshot of the session record. Empty fields are absent.
type Record struct {
	StudentID string
	Name      string
	Major     string
	GPA       string
	Level     string
}

// LoggedIn reports whether the record identifies a student.
func (r Record) LoggedIn() bool {
	return r.StudentID != ""
}

// Source says where a Profile's data came from.
type Source string

const (
	// SourceRecommender: the recommendation service answered; fields come from the local record.
	SourceRecommender Source = "recommend"
	// SourceLogin: fields come verbatim from the login service.
	SourceLogin Source = "login"
	// SourceCache: no backend answered; fields come from the local record.
	SourceCache Source = "cache"
)

// Profile is the student profile handed to callers. All fields are strings.
type Profile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Major  string `json:"major"`
	GPA    string `json:"gpa"`
	Level  string `json:"level"`
	Source Source `json:"source,omitempty"`
}

// ProfileFor builds a profile for id from the record, filling absent fields
// with the package defaults. The record's own StudentID is not consulted.
func (r Record) ProfileFor(id string, src Source) Profile {
	return Profile{
		ID:     id,
		Name:   orDefault(r.Name, DefaultName),
		Major:  orDefault(r.Major, DefaultMajor),
		GPA:    orDefault(r.GPA, DefaultGPA),
		Level:  orDefault(r.Level, DefaultLevel),
		Source: src,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
