package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactlyOne(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr string
	}{
		{
			name:    "one set",
			sources: []Source{{"WithFilePath", true}, {"WithBytes", false}},
		},
		{
			name:    "none set lists every option",
			sources: []Source{{"WithFilePath", false}, {"WithReader", false}, {"WithBytes", false}},
			wantErr: "loader: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		},
		{
			name:    "two options read naturally",
			sources: []Source{{"file", false}, {"content", false}},
			wantErr: "loader: must specify an input source (use file or content)",
		},
		{
			name:    "several set",
			sources: []Source{{"WithFilePath", true}, {"WithBytes", true}},
			wantErr: "loader: must specify exactly one input source, got WithFilePath and WithBytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExactlyOne("loader", tt.sources...)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
