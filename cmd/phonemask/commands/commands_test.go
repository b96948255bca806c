package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRoot(func(string) (string, bool) { return "", false })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default country", []string{"format", "abc123"}, "+380 (12) 3\t11\n"},
		{"explicit country", []string{"format", "--country", "US", "5551234567"}, "+1 (555) 123-4567\t17\n"},
		{"pasted with country code", []string{"format", "--country", "US", "15551234567"}, "+1 (555) 123-4567\t17\n"},
		{"dial code", []string{"format", "--country", "+1", "555"}, "+1 (555\t7\n"},
		{"focus", []string{"format", "--event", "focus", ""}, "+380\t5\n"},
		{"blur", []string{"format", "--event", "blur", "+380 ("}, "+380\t-\n"},
		{"matrix", []string{"format", "--matrix", "+44 ____ ______", "7911123456"}, "+44 7911 123456\t15\n"},
		{"several", []string{"format", "50", "67"}, "+380 (50\t8\n+380 (67\t8\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, "", tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatStdin(t *testing.T) {
	got, err := execute(t, "501\n+1 555\n", "format", "--country", "UA")
	if err != nil {
		t.Fatal(err)
	}
	want := "+380 (50) 1\t11\n+380 (15) 55\t12\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad event", []string{"format", "--event", "hover", "1"}},
		{"bad matrix", []string{"format", "--matrix", "380 (__)", "1"}},
		{"matrix without placeholders", []string{"format", "--matrix", "+380 (xx)", "1"}},
		{"country and matrix", []string{"format", "--country", "UA", "--matrix", "+1 ___", "1"}},
		{"bad log level", []string{"--log-level", "loud", "format", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCountriesCommand(t *testing.T) {
	got, err := execute(t, "", "countries")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if !strings.HasPrefix(lines[0], "FLAG") {
		t.Errorf("missing header: %q", lines[0])
	}
	if !strings.Contains(got, "UA") || !strings.Contains(got, "+380") || !strings.Contains(got, "(__) ___ __ __") {
		t.Errorf("Ukraine missing from listing:\n%s", got)
	}
}

func TestCountriesNumberPlan(t *testing.T) {
	got, err := execute(t, "", "countries", "--numberplan")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "JP") || !strings.Contains(got, "+81") {
		t.Errorf("metadata listing should include Japan:\n%s", got)
	}
}

func TestEditRejectsArgs(t *testing.T) {
	if _, err := execute(t, "", "edit", "extra"); err == nil {
		t.Error("edit takes no arguments")
	}
}

func TestEditorLog(t *testing.T) {
	w, closeLog, err := editorLog("")
	if err != nil {
		t.Fatal(err)
	}
	closeLog()
	if w != io.Discard {
		t.Errorf("no log file should discard, got %T", w)
	}

	path := filepath.Join(t.TempDir(), "edit.log")
	w, closeLog, err = editorLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "reload failed\n"); err != nil {
		t.Fatal(err)
	}
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "reload failed\n" {
		t.Errorf("log file = %q", data)
	}

	if _, _, err := editorLog(filepath.Join(t.TempDir(), "missing", "edit.log")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
