// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Settings: {
	name:    string
	count:   int & >=0
	level?:  "debug" | "info"
	tags?: [...string]
}
`

type settings struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Level string   `json:"level,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		opts    []Option
		want    settings
		wantErr string
	}{
		{
			name: "all fields",
			data: `name: "a", count: 2, level: "info", tags: ["x", "y"]`,
			want: settings{Name: "a", Count: 2, Level: "info", Tags: []string{"x", "y"}},
		},
		{
			name: "optional fields omitted",
			data: `name: "b", count: 0`,
			want: settings{Name: "b"},
		},
		{
			name:    "constraint violated",
			data:    `name: "c", count: -1`,
			opts:    []Option{WithFilename("settings.cue")},
			wantErr: "settings.cue: count",
		},
		{
			name:    "disjunction violated",
			data:    `name: "d", count: 1, level: "trace"`,
			wantErr: "level",
		},
		{
			name:    "closed definition rejects unknown field",
			data:    `name: "e", count: 1, color: "red"`,
			wantErr: "color",
		},
		{
			name:    "syntax error",
			data:    `name: `,
			opts:    []Option{WithFilename("broken.cue")},
			wantErr: "broken.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAndDecode[settings]([]byte(testSchema), []byte(tt.data), "#Settings", tt.opts...)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAndDecode() error: %v", err)
			}
			if got.Name != tt.want.Name || got.Count != tt.want.Count || got.Level != tt.want.Level || len(got.Tags) != len(tt.want.Tags) {
				t.Errorf("ParseAndDecode() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseAndDecode_NonConcrete(t *testing.T) {
	t.Parallel()

	schema := []byte(`#Optional: {level?: "debug" | "info", name?: string}`)
	got, err := ParseAndDecode[map[string]any](schema, []byte(`level: "debug"`), "#Optional", WithConcrete(false))
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if (*got)["level"] != "debug" {
		t.Errorf("decoded map = %v", *got)
	}
}

func TestParseAndDecode_FileTooLarge(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[settings]([]byte(testSchema), []byte(`name: "big", count: 1`), "#Settings", WithMaxFileSize(4))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("error = %v, want ErrFileTooLarge", err)
	}
}

func TestParseAndDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[settings]([]byte(testSchema), []byte(`name: "x"`), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("error = %v", err)
	}
}
