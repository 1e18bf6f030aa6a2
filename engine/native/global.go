//go:build cgo

package native

import "github.com/vkngwrapper/scudo"

// Global is an Allocator over the process-wide engine. It is safe for concurrent use.
var Global = scudo.New(Engine{})
