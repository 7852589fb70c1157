// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "coursemate/cli/internal/backend"

// FallbackRecommendations returns the sample shown when the recommendation
// service cannot be used. A fresh slice is returned on every call.
func FallbackRecommendations() []backend.Recommendation {
	return []backend.Recommendation{
		{
			CourseID:   "1",
			CourseCode: "CS201",
			CourseName: "Data Structures",
			Score:      9.5,
			Reason:     "Core course for your level",
			Type:       "academic_path",
			Location:   "Building FB200, Room 4",
			Instructor: "Dr. Ahmed Hassan",
		},
	}
}
