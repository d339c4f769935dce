package lua

import lua "github.com/yuin/gopher-lua"

// blockedGlobals can load code from disk or strings and bypass the sandbox.
var blockedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"require",
	"module",
}

// installSandbox removes the blocked globals and replaces print with a
// no-op, since stdout belongs to the terminal UI.
func installSandbox(L *lua.LState) {
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(*lua.LState) int { return 0 }))
}
