// Package options compiles a declarative list of engine options into the NUL-terminated string the
// Scudo engine reads through __scudo_default_options at process start.
//
// Options are declared on the program's entry point with a directive comment:
//
//	//go:generate go run github.com/vkngwrapper/scudo/cmd/scudo-options
//	//scudo:options delete_size_mismatch = false, release_to_os_interval_ms = -1
//	func main() {
//
// The generator validates the list before the package is compiled and emits two files alongside main:
// scudo_options_gen.go with the compiled string as a constant, and scudo_options_cgo_gen.go, which
// defines __scudo_default_options for cgo builds.
package options

// ValueKind identifies the token shape an option value was written with
type ValueKind uint32

const (
	ValueNumber ValueKind = iota
	ValueBool
)

var valueKindMapping = map[ValueKind]string{
	ValueNumber: "Number",
	ValueBool:   "Bool",
}

func (k ValueKind) String() string {
	return valueKindMapping[k]
}

// Value is an option value in the exact textual form it will take in the options string
type Value struct {
	Kind ValueKind
	Text string
}

// Entry is a single key = value pair
type Entry struct {
	Key   string
	Value Value
}

func (e Entry) String() string {
	return e.Key + "=" + e.Value.Text
}
