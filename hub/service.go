package hub

import (
	"bytes"

	"github.com/tim-hardcastle/Remora/evaluator"
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/parser"
)

// A service is a running script: its environment, the parser that reads
// its input, and the filepath it was started from so that it can be reset
// and saved.
type Service struct {
	Parser         *parser.Parser
	Env            *object.Environment
	scriptFilepath string
}

func NewService() *Service {
	service := Service{}
	return &service
}

// Do runs one line of input in the service's environment and returns what
// should be shown to the user, together with any runtime errors for the
// benefit of `hub why`. Results that are the empty list aren't shown;
// this is what makes a line of definitions quiet. A runtime error is shown
// in sequence with the results but doesn't stop the rest of the line from
// being evaluated.
//
// Parse errors are left sitting in the parser for the hub to report.
func (service *Service) Do(line string, view object.View) (string, object.Errors) {
	exprs := service.Parser.ParseLine("REPL input", line)
	if service.Parser.ErrorsExist() {
		return "", nil
	}
	var out bytes.Buffer
	errors := object.Errors{}
	for _, expr := range exprs {
		result := evaluator.Eval(expr, service.Env)
		if result.Type() == object.ERROR_OBJ {
			err := result.(*object.Error)
			errors = append(errors, err)
			out.WriteString(err.Inspect(object.ViewStdOut) + "\n")
			continue
		}
		if list, ok := result.(*object.List); ok && list.Len() == 0 {
			continue
		}
		out.WriteString(result.Inspect(view) + "\n")
	}
	return out.String(), errors
}

func (service *Service) GetScriptFilepath() string {
	return service.scriptFilepath
}
