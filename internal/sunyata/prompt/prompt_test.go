package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/longkey1/sunyata/internal/sunyata"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name         string
		requirements Requirements
		wantReqLine  string
	}{
		{
			name: "no requirements",
		},
		{
			name:         "single requirement",
			requirements: Requirements{Security: true},
			wantReqLine:  "Requirements: implement security best practices",
		},
		{
			name:         "two requirements keep canonical order",
			requirements: Requirements{Testing: true, Performance: true},
			wantReqLine:  "Requirements: optimize for performance, include unit tests",
		},
		{
			name:         "all requirements",
			requirements: Requirements{Performance: true, Memory: true, Security: true, Testing: true},
			wantReqLine:  "Requirements: optimize for performance, optimize for memory usage, implement security best practices, include unit tests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(Request{
				TaskType:     sunyata.TaskDebugCode,
				Language:     sunyata.LanguageSQL,
				Body:         "SELECT * FROM t WHERE",
				Requirements: tt.requirements,
			})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}

			lines := strings.Split(got, "\n")
			wantLines := []string{
				"Task Type: Debug Code",
				"Language: SQL",
				"Request: SELECT * FROM t WHERE",
			}
			if tt.wantReqLine != "" {
				wantLines = append(wantLines, tt.wantReqLine)
			}
			if len(lines) != len(wantLines) {
				t.Fatalf("Build() = %q, want %d lines", got, len(wantLines))
			}
			for i := range wantLines {
				if lines[i] != wantLines[i] {
					t.Errorf("line %d = %q, want %q", i, lines[i], wantLines[i])
				}
			}
			if tt.wantReqLine == "" && strings.Contains(got, "Requirements:") {
				t.Errorf("Build() = %q, must not contain a Requirements line", got)
			}
		})
	}
}

func TestBuildMultilineBody(t *testing.T) {
	body := "def f(x):\n    return x"
	got, err := Build(Request{TaskType: sunyata.TaskExplainCode, Language: sunyata.LanguagePython, Body: body})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := "Task Type: Explain Code\nLanguage: Python\nRequest: " + body
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBuildQuickActions(t *testing.T) {
	tests := []struct {
		action sunyata.Action
		want   string
	}{
		{sunyata.ActionAnalyze, "Analyze this Java code and provide insights: class A {}"},
		{sunyata.ActionDebug, "Debug this Java code: class A {}"},
		{sunyata.ActionDocument, "Add comprehensive documentation to this Java code: class A {}"},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			got, err := Build(Request{
				TaskType:     sunyata.TaskWriteNewCode,
				Language:     sunyata.LanguageJava,
				Body:         "class A {}",
				Requirements: Requirements{Testing: true},
				Action:       tt.action,
			})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := Build(Request{TaskType: sunyata.TaskWriteNewCode, Language: sunyata.LanguagePython, Body: body})
		if !errors.Is(err, ErrEmptyBody) {
			t.Errorf("Build(%q) error = %v, want ErrEmptyBody", body, err)
		}
	}
}

func TestBuildUnknownAction(t *testing.T) {
	_, err := Build(Request{Body: "x", Action: "refactor"})
	if !errors.Is(err, sunyata.ErrUnknownAction) {
		t.Errorf("Build() error = %v, want ErrUnknownAction", err)
	}
}

func TestMessages(t *testing.T) {
	msgs := Messages("sys", "usr")
	if len(msgs) != 2 {
		t.Fatalf("Messages() len = %d, want 2", len(msgs))
	}
	if msgs[0].Role != sunyata.RoleSystem || msgs[0].Content != "sys" {
		t.Errorf("Messages()[0] = %+v", msgs[0])
	}
	if msgs[1].Role != sunyata.RoleUser || msgs[1].Content != "usr" {
		t.Errorf("Messages()[1] = %+v", msgs[1])
	}
}

func TestSystemPrompt(t *testing.T) {
	dir := t.TempDir()

	t.Run("default", func(t *testing.T) {
		got, err := SystemPrompt("")
		if err != nil {
			t.Fatalf("SystemPrompt() error = %v", err)
		}
		if !strings.HasPrefix(got, "ROLE: Sunyata") {
			t.Errorf("SystemPrompt() = %q, want the default persona", got[:40])
		}
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(dir, "terse.toml")
		content := "system = \"Answer with code only.\"\nmodel = \"Qwen/Qwen2.5-Coder-7B-Instruct\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		got, err := SystemPrompt(path)
		if err != nil {
			t.Fatalf("SystemPrompt() error = %v", err)
		}
		if got != "Answer with code only." {
			t.Errorf("SystemPrompt() = %q", got)
		}

		p, err := LoadPrompt(path)
		if err != nil {
			t.Fatalf("LoadPrompt() error = %v", err)
		}
		if p.Model == nil || *p.Model != "Qwen/Qwen2.5-Coder-7B-Instruct" {
			t.Errorf("LoadPrompt() model = %v", p.Model)
		}
	})

	t.Run("empty system", func(t *testing.T) {
		path := filepath.Join(dir, "empty.toml")
		if err := os.WriteFile(path, []byte("system = \"\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := SystemPrompt(path); err == nil {
			t.Error("SystemPrompt() expected error for empty system prompt")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := SystemPrompt(filepath.Join(dir, "nope.toml")); err == nil {
			t.Error("SystemPrompt() expected error for missing file")
		}
	})
}

func TestParseRequirements(t *testing.T) {
	tests := []struct {
		names   []string
		want    Requirements
		wantErr bool
	}{
		{names: nil, want: Requirements{}},
		{names: []string{"performance", "testing"}, want: Requirements{Performance: true, Testing: true}},
		{names: []string{" MEM ", "sec"}, want: Requirements{Memory: true, Security: true}},
		{names: []string{"speed"}, wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseRequirements(tt.names)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownRequirement) {
				t.Errorf("ParseRequirements(%v) error = %v, want ErrUnknownRequirement", tt.names, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRequirements(%v) unexpected error: %v", tt.names, err)
		}
		if got != tt.want {
			t.Errorf("ParseRequirements(%v) = %+v, want %+v", tt.names, got, tt.want)
		}
	}
}

func TestRequirementsSetAndEnabled(t *testing.T) {
	var r Requirements
	for _, name := range RequirementNames {
		if err := r.Set(name, true); err != nil {
			t.Fatalf("Set(%q) error: %v", name, err)
		}
		if !r.Enabled(name) {
			t.Errorf("Enabled(%q) = false after Set", name)
		}
	}
	if err := r.Set("security", false); err != nil {
		t.Fatal(err)
	}
	if r.Enabled("security") {
		t.Error("Enabled(security) = true after turning it off")
	}
}

func TestRequirementsToggle(t *testing.T) {
	r := Requirements{Memory: true}
	if err := r.Toggle("perf"); err != nil {
		t.Fatal(err)
	}
	if err := r.Toggle("memory"); err != nil {
		t.Fatal(err)
	}
	want := Requirements{Performance: true}
	if r != want {
		t.Errorf("after toggles = %+v, want %+v", r, want)
	}
	if err := r.Toggle("speed"); !errors.Is(err, ErrUnknownRequirement) {
		t.Errorf("Toggle(speed) error = %v, want ErrUnknownRequirement", err)
	}
}
