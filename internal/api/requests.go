// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/xlfang/groupscope/internal/validation"
)

// SelectDimensionRequest switches the current analysis dimension.
type SelectDimensionRequest struct {
	Dimension string `json:"dimension" validate:"required,oneof=overview message_volume content_type time_pattern social_behavior member_join_time"`
}

// SelectGroupRequest sets or clears the group filter. An empty group
// clears it, so the field carries no required tag.
type SelectGroupRequest struct {
	Group string `json:"group" validate:"max=256"`
}

// maxBodyBytes bounds request bodies; every mutating payload here is tiny.
const maxBodyBytes = 4 << 10

// decodeRequest parses and validates a JSON request body into dst.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return validation.ValidateStruct(dst)
}

// validationDetails extracts per-field details when err is a validation
// failure, for the error envelope.
func validationDetails(err error) interface{} {
	var serr *validation.StructError
	if !errors.As(err, &serr) {
		return nil
	}
	fields := make(map[string]string, len(serr.Fields))
	for _, f := range serr.Fields {
		fields[f.Field] = f.Tag
	}
	return fields
}
