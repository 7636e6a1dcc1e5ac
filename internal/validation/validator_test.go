// Groupscope - Chat Group Member Profiling Dashboard
// Copyright 2026 X. Fang (xlfang)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/xlfang/groupscope

package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `validate:"required"`
	Port int    `validate:"min=1,max=65535"`
	Mode string `validate:"omitempty,oneof=json console"`
}

func TestValidateStructOK(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sample{Name: "x", Port: 8080}))
	assert.NoError(t, ValidateStruct(&sample{Name: "x", Port: 1, Mode: "console"}))
}

func TestValidateStructFailures(t *testing.T) {
	err := ValidateStruct(&sample{Port: 99999, Mode: "loud"})
	require.Error(t, err)

	var serr *StructError
	require.True(t, errors.As(err, &serr))
	assert.Len(t, serr.Fields, 3)

	tags := make(map[string]string)
	for _, f := range serr.Fields {
		tags[f.Field] = f.Tag
	}
	assert.Equal(t, "required", tags["Name"])
	assert.Equal(t, "max", tags["Port"])
	assert.Equal(t, "oneof", tags["Mode"])
}
