// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Recommendation is one course suggested by the recommendation service.
type Recommendation struct {
	CourseID   string  `json:"course_id"`
	CourseCode string  `json:"course_code"`
	CourseName string  `json:"course_name"`
	Score      float64 `json:"score"`
	Reason     string  `json:"reason"`
	Type       string  `json:"type"`
	Location   string  `json:"location"`
	Instructor string  `json:"instructor"`
}

// LoginResult is the login service answer.
type LoginResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	Student  *Student `json:"student,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

// Student is the profile payload of a successful login.
type Student struct {
	ID    FlexString `json:"id"`
	Name  FlexString `json:"name"`
	Major FlexString `json:"major"`
	Level FlexString `json:"level"`
	GPA   FlexString `json:"gpa"`
}

// FlexString decodes a JSON string or number into its literal text, so a
// level of 3 and a level of "3" both read as "3", and a gpa of 3.5 reads as "3.5".
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string { return string(f) }
