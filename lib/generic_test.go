package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testStringer interface {
	String() string
}

type testPtr struct{}

func (*testPtr) String() string { return "" }

func TestIsNil(t *testing.T) {
	var nilPtr *testPtr
	var nilStringer testStringer = nilPtr
	testCases := []struct {
		desc  string
		v     any
		isNil bool
	}{
		{"nil", nil, true},
		{"nil pointer in interface", nilStringer, true},
		{"nil map", map[string]int(nil), true},
		{"pointer", &testPtr{}, false},
		{"value", 0, false},
		{"empty string", "", false},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			assert := require.New(t)
			assert.Equal(tC.isNil, IsNil(tC.v))
		})
	}
}
