package sunyata

import (
	"context"
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Language
		wantErr bool
	}{
		{
			name:  "exact match",
			input: "Python",
			want:  LanguagePython,
		},
		{
			name:  "case insensitive",
			input: "c++",
			want:  LanguageCPP,
		},
		{
			name:  "with whitespace",
			input: "  HTML/CSS ",
			want:  LanguageHTMLCSS,
		},
		{
			name:    "unsupported language",
			input:   "Rust",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseLanguage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownLanguage) {
				t.Errorf("ParseLanguage() error = %v, want ErrUnknownLanguage", err)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTaskType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TaskType
		wantErr bool
	}{
		{
			name:  "exact match",
			input: "Write New Code",
			want:  TaskWriteNewCode,
		},
		{
			name:  "lower case",
			input: "code review",
			want:  TaskCodeReview,
		},
		{
			name:    "partial label",
			input:   "Debug",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseTaskType() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownTaskType) {
				t.Errorf("ParseTaskType() error = %v, want ErrUnknownTaskType", err)
			}
			if got != tt.want {
				t.Errorf("ParseTaskType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		want    Action
		wantErr bool
	}{
		{input: "", want: ActionGenerate},
		{input: "Analyze", want: ActionAnalyze},
		{input: "debug", want: ActionDebug},
		{input: "document", want: ActionDocument},
		{input: "refactor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAction(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAction(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseAction(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStreamerFunc(t *testing.T) {
	var got []string
	f := StreamerFunc(func(ctx context.Context, req ChatRequest, onDelta func(string)) error {
		for _, m := range req.Messages {
			onDelta(m.Content)
		}
		return nil
	})

	req := ChatRequest{Messages: []Message{{Role: RoleSystem, Content: "a"}, {Role: RoleUser, Content: "b"}}}
	if err := f.StreamChat(context.Background(), req, func(s string) { got = append(got, s) }); err != nil {
		t.Fatalf("StreamChat() error = %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("StreamChat() delivered %v, want [a b]", got)
	}
}
