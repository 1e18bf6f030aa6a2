//go:build cgo

package main

import (
	"github.com/vkngwrapper/scudo/engine"
	"github.com/vkngwrapper/scudo/engine/native"
)

// engineNames lists the engines this build can misuse, default first
var engineNames = []string{"native", "sim"}

func newNativeEngine() (engine.Engine, error) {
	return native.Engine{}, nil
}
