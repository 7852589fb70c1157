// Copyright (c) 2025 Coursemate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	apperrors "coursemate/cli/internal/errors"
)

// kindHints are follow-up suggestions shown under an error of that kind.
var kindHints = map[apperrors.Kind]string{
	apperrors.SessionMissing: "Run 'coursemate login' to sign in.",
	apperrors.StoreFailed:    "Check that the OS keyring is unlocked, or use --store memory.",
	apperrors.DecodeFailed:   "The service answered with something other than the expected JSON.",
}

// PresentError formats an error for user display with masking. The label is
// omitted when empty, and a hint line follows for kinds that have one.
func PresentError(label string, err error) string {
	if err == nil {
		return ""
	}
	msg := Mask(err.Error())
	if label != "" {
		msg = label + ": " + msg
	}
	if hint, ok := kindHints[apperrors.KindOf(err)]; ok {
		msg += "\n   " + hint
	}
	return msg
}
