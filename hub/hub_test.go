package hub_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tim-hardcastle/Remora/hub"
	"github.com/tim-hardcastle/Remora/initializer"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
)

func newTestService() *hub.Service {
	service := hub.NewService()
	service.Parser = parser.New()
	service.Env = initializer.NewEnvironment()
	return service
}

func TestServiceDo(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`(+ 2 2)`, "4\n"},
		{`(define x 3)`, ""},
		{`(define x 3) (* x x)`, "9\n"},
		{`1 2 3`, "1\n2\n3\n"},
		{`()`, ""},
		{`(list)`, ""},
		{`(cond (false 1))`, ""},
		{`"hello"`, "hello\n"},
	}
	for i, tt := range tests {
		service := newTestService()
		got, errors := service.Do(tt.input, object.ViewStdOut)
		if len(errors) > 0 {
			t.Fatalf("tests[%d] - unexpected error: %s", i, errors[0].ErrorId)
		}
		if got != tt.want {
			t.Fatalf("tests[%d] - output wrong. expected=%q, got=%q", i, tt.want, got)
		}
	}
}

func TestServiceViews(t *testing.T) {
	service := newTestService()
	got, _ := service.Do(`"hi"`, object.ViewStdOut)
	if got != "hi\n" {
		t.Fatalf("plain view wrong. expected=%q, got=%q", "hi\n", got)
	}
	got, _ = service.Do(`"hi"`, object.ViewLiteral)
	if got != "\"hi\"\n" {
		t.Fatalf("literal view wrong. expected=%q, got=%q", "\"hi\"\n", got)
	}
}

// A runtime error is reported in sequence but doesn't stop the rest of
// the line.
func TestServiceContinuesPastErrors(t *testing.T) {
	service := newTestService()
	got, errors := service.Do(`(car ()) (+ 1 1)`, object.ViewStdOut)
	if len(errors) != 1 {
		t.Fatalf("error count wrong. expected=%d, got=%d", 1, len(errors))
	}
	if errors[0].ErrorId != "lib/car/empty" {
		t.Fatalf("error wrong. expected=%q, got=%q", "lib/car/empty", errors[0].ErrorId)
	}
	if !strings.HasSuffix(got, "2\n") {
		t.Fatalf("evaluation stopped at the error. got=%q", got)
	}
}

func TestServiceParseErrors(t *testing.T) {
	service := newTestService()
	got, errors := service.Do(`(1 2`, object.ViewStdOut)
	if got != "" || errors != nil {
		t.Fatalf("parse error leaked into results. got=%q", got)
	}
	if !service.Parser.ErrorsExist() {
		t.Fatalf("parse error not left in the parser")
	}
	if service.Parser.Errors[0].ErrorId != "parse/eof/list" {
		t.Fatalf("error wrong. expected=%q, got=%q", "parse/eof/list", service.Parser.Errors[0].ErrorId)
	}
}

func TestServiceKeepsState(t *testing.T) {
	service := newTestService()
	service.Do(`(define counter 10)`, object.ViewStdOut)
	service.Do(`(define counter (+ counter 1))`, object.ViewStdOut)
	got, _ := service.Do(`counter`, object.ViewStdOut)
	if got != "11\n" {
		t.Fatalf("state lost between lines. expected=%q, got=%q", "11\n", got)
	}
}

func TestParseHubCommand(t *testing.T) {
	tests := []struct {
		line string
		verb string
		args []string
	}{
		{"quit", "quit", []string{}},
		{"run foo.rmr", "run", []string{"foo.rmr"}},
		{"run foo.rmr as bar", "run", []string{"foo.rmr", "as", "bar"}},
		{"db init", "db-init", []string{}},
		{"db groups alice", "db-groups", []string{"alice"}},
		{"db add user alice a@b.com pw", "db-add-user", []string{"alice", "a@b.com", "pw"}},
		{"db add group admins", "db-add-group", []string{"admins"}},
		{"why 0", "why", []string{"0"}},
		{"", "error", []string{}},
	}
	for i, tt := range tests {
		hb := hub.New(strings.NewReader(""), &bytes.Buffer{})
		verb, args := hb.ParseHubCommand(tt.line)
		if verb != tt.verb {
			t.Fatalf("tests[%d] - verb wrong. expected=%q, got=%q", i, tt.verb, verb)
		}
		if len(args) != len(tt.args) {
			t.Fatalf("tests[%d] - arg count wrong. expected=%d, got=%d", i, len(tt.args), len(args))
		}
		for j := range args {
			if args[j] != tt.args[j] {
				t.Fatalf("tests[%d] - args[%d] wrong. expected=%q, got=%q", i, j, tt.args[j], args[j])
			}
		}
	}
}
