package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"csv", "json", "table", "tsv", "xlsx"}, names)
}

func TestLookup_Known(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			f, err := Lookup(name, nil)
			require.NoError(t, err)
			assert.Equal(t, name, f.Name)
			assert.NotNil(t, f.Write)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("parquet", nil)
	require.Error(t, err)
	assert.True(t, IsUnsupportedFormat(err))
	assert.Contains(t, err.Error(), "csv")
}

func TestLookup_OptionValidation(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		opts    Options
		wantErr bool
	}{
		{"csv delimiter ok", "csv", Options{"delimiter": "|"}, false},
		{"csv delimiter too long", "csv", Options{"delimiter": "ab"}, true},
		{"csv delimiter empty", "csv", Options{"delimiter": ""}, true},
		{"csv crlf ok", "csv", Options{"crlf": "true"}, false},
		{"csv crlf bad value", "csv", Options{"crlf": "maybe"}, true},
		{"csv unknown option", "csv", Options{"color": "red"}, true},
		{"json indent ok", "json", Options{"indent": "true"}, false},
		{"json unknown option", "json", Options{"delimiter": ";"}, true},
		{"table separators ok", "table", Options{"separators": "false"}, false},
		{"xlsx sheet ok", "xlsx", Options{"sheet": "Annual"}, false},
		{"xlsx sheet too long", "xlsx", Options{"sheet": "abcdefghijklmnopqrstuvwxyzabcdef"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(tt.format, tt.opts)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidOptions(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
