package selector

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

var threeCities = []string{"Paris", "Berlin", "Quito"}

func TestPromptSelector_Select(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "First option", input: "1\n", want: 0},
		{name: "Second option", input: "2\n", want: 1},
		{name: "Last option without newline", input: "3", want: 2},
		{name: "Surrounding whitespace", input: "  2 \r\n", want: 1},
		{name: "Zero is out of range", input: "0\n", wantErr: ErrSelectionOutOfRange},
		{name: "Past the end is out of range", input: "4\n", wantErr: ErrSelectionOutOfRange},
		{name: "Negative is out of range", input: "-1\n", wantErr: ErrSelectionOutOfRange},
		{name: "Letters are invalid", input: "abc\n", wantErr: ErrInvalidSelection},
		{name: "Blank line is invalid", input: "\n", wantErr: ErrInvalidSelection},
		{name: "Decimal is invalid", input: "1.5\n", wantErr: ErrInvalidSelection},
		{name: "No input at all", input: "", wantErr: ErrSelectionCancelled},
		{name: "Only the first line is read", input: "x\n2\n", wantErr: ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			sel := NewPromptSelector(strings.NewReader(tt.input), &out)

			got, err := sel.Select(threeCities)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptSelector_ListsOptions(t *testing.T) {
	var out bytes.Buffer
	sel := NewPromptSelector(strings.NewReader("1\n"), &out)

	_, err := sel.Select(threeCities)
	require.NoError(t, err)

	want := "1. Paris\n2. Berlin\n3. Quito\nPlease select a city to monitor for weather updates\n"
	assert.Equal(t, want, out.String())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("terminal closed") }

func TestPromptSelector_ReadError(t *testing.T) {
	sel := NewPromptSelector(failingReader{}, &bytes.Buffer{})

	_, err := sel.Select(threeCities)
	assert.ErrorIs(t, err, ErrSelectionCancelled)
}

func TestParseChoice_EmptyOptions(t *testing.T) {
	_, err := parseChoice("1", 0)
	assert.ErrorIs(t, err, ErrSelectionOutOfRange)
}
