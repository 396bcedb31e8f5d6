package sysvars

import (
	"github.com/tim-hardcastle/Remora/object"
	"github.com/tim-hardcastle/Remora/text"
)

// The hub's system variables, set with `hub lib` and `hub view`. They
// belong to the hub and not to any service: the evaluator knows nothing
// about them.

type sysvar = struct {
	Dflt      object.Object
	Validator func(object.Object) string
}

var Sysvars = map[string]sysvar{
	"$view": {
		Dflt: &object.String{Value: "plain"},
		Validator: func(obj object.Object) string {
			switch obj.(type) {
			case *object.String:
				if obj.(*object.String).Value != "literal" && obj.(*object.String).Value != "plain" {
					return "system variable " + text.Emph("$view") + " takes values " +
						text.Emph("\"literal\"") + " or " + text.Emph("\"plain\"")
				}
				return ""
			default:
				return "system variable " + text.Emph("$view") + " is of type " + text.Emph("string")
			}
		},
	},
	"$lib": {
		Dflt: &object.String{Value: "lib/"},
		Validator: func(obj object.Object) string {
			switch obj.(type) {
			case *object.String:
				return ""
			default:
				return "system variable " + text.Emph("$lib") + " is of type " + text.Emph("string")
			}
		},
	},
}
