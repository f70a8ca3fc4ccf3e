// Marquee - Cluster-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and translates field errors into
// the API's VALIDATION_ERROR format. Fields are reported by their JSON names.
//
// # Usage
//
//	var in models.MovieInput
//	if verr := validation.ValidateStruct(&in); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - notblank: the string is not empty after trimming whitespace
//
// # Error Format
//
// A single failure yields the field's message with details {field, tag, value}:
//
//	{"code": "VALIDATION_ERROR", "message": "rating must be at most 10",
//	 "details": {"field": "rating", "tag": "max", "value": 11}}
//
// Several failures are joined with "; " and listed under details.fields.
package validation
