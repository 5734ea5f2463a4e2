package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mkch/primegen/internal/render"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "primegen.yaml")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{"empty", "", Default(), false},
		{"bound", "bound: 10\n", Config{Bound: 10, Dialect: render.Module, Output: Stdout}, false},
		{"all",
			"bound: 100\ndialect: build-script\noutput: out.rs\nverify: true\nlicense:\n  - MIT\n  - \"\"\n",
			Config{Bound: 100, Dialect: render.BuildScript, Output: "out.rs", Verify: true, License: []string{"MIT", ""}},
			false},
		{"unknown field", "max: 10\n", Config{}, true},
		{"bad type", "bound: many\n", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeConfig(t, tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadNoPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Fatal(diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(c *Config)
		wantField string
	}{
		{"default", func(c *Config) {}, ""},
		{"zero", func(c *Config) { c.Bound = 0 }, ""},
		{"max", func(c *Config) { c.Bound = render.MaxConstant }, ""},
		{"negative", func(c *Config) { c.Bound = -1 }, "bound"},
		{"too large", func(c *Config) { c.Bound = render.MaxConstant + 1 }, "bound"},
		{"dialect", func(c *Config) { c.Dialect = "python" }, "dialect"},
		{"output", func(c *Config) { c.Output = "" }, "output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(&c)
			err := c.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatal(err)
				}
				return
			}
			var cfgErr *Error
			if !errors.As(err, &cfgErr) || cfgErr.Field != tt.wantField {
				t.Fatalf("Validate() error = %v, want field %v", err, tt.wantField)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Fatal("error does not wrap ErrInvalid")
			}
		})
	}
}
