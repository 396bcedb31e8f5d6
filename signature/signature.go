package signature

// A StructSig holds the declared field names of a struct type, in
// declaration order. The order is load-bearing: constructors bind their
// arguments to fields positionally, and accessors look their field up by
// name to find its index.

type StructSig []string

func (sig StructSig) String() (result string) {
	for _, v := range sig {
		if result != "" {
			result = result + " "
		}
		result = result + v
	}
	result = "(" + result + ")"
	return
}

// Index produces the position of the named field, or -1 if the struct has
// no such field.
func (sig StructSig) Index(fieldName string) int {
	for i, v := range sig {
		if v == fieldName {
			return i
		}
	}
	return -1
}

func (sig StructSig) Arity() int {
	return len(sig)
}
