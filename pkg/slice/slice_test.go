// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/cinelist/pkg/slice"
)

func TestFilter(t *testing.T) {
	input := []string{"603", "550", "13"}

	kept := slice.Filter(input, func(id string) bool { return id != "550" })

	assert.Equal(t, []string{"603", "13"}, kept)
	assert.Equal(t, []string{"603", "550", "13"}, input)
	assert.Nil(t, slice.Filter(input, func(string) bool { return false }))
}
