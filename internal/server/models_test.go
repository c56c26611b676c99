package server

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`"1000"`, "1000", false},
		{`1000`, "1000", false},
		{`"+7"`, "7", false},
		{`"  42 "`, "42", false},
		{`"340282366920938463463374607431768211456"`, "340282366920938463463374607431768211456", false},
		{`"0"`, "0", false},
		{`""`, "", true},
		{`"-1"`, "", true},
		{`-1`, "", true},
		{`"+"`, "", true},
		{`"1.0"`, "", true},
		{`1.5`, "", true},
		{`"0x10"`, "", true},
		{`"1_000"`, "", true},
		{`{}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := parseAmount(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestIsMissing(t *testing.T) {
	assert.True(t, isMissing(nil))
	assert.True(t, isMissing(json.RawMessage(`null`)))
	assert.True(t, isMissing(json.RawMessage(`""`)))
	assert.False(t, isMissing(json.RawMessage(`"0"`)))
	assert.False(t, isMissing(json.RawMessage(`0`)))
}
