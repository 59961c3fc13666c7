package ai

import (
	"strings"
	"testing"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"{\"a\":1}", "{\"a\":1}"},
		{"  \n```json\n[1,2]\n```\n  ", "[1,2]"},
	}
	for _, c := range cases {
		if got := StripFences(c.in); got != c.want {
			t.Errorf("StripFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractJSONIgnoresSurroundingProse(t *testing.T) {
	reply := "Sure, here is the data you asked for:\n{\"summary\": \"ok\"}\nLet me know if you need more."
	got := ExtractJSON(reply)
	if got != `{"summary": "ok"}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	reply := "```json\n[{\"name\":\"a\",\"value\":1}]\n```"
	got := ExtractJSON(reply)
	if got != `[{"name":"a","value":1}]` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	reply := "```json\n{\"summary\": \"five columns, no duplicates\"}\n```"
	if err := DecodeJSON(reply, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.Summary != "five columns, no duplicates" {
		t.Fatalf("unexpected decode: %+v", out)
	}
}

func TestDecodeJSONReportsInvalidReply(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("I could not produce JSON, sorry.", &out)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "parse model reply") {
		t.Fatalf("unexpected error: %v", err)
	}
}
