package validator

import (
	"context"
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// scriptRunner evaluates Lua script rules.
//
// gopher-lua's LState is not goroutine-safe, so one state is shared and
// every evaluation is serialized through a mutex. The state is stripped
// of globals that reach outside the process.
type scriptRunner struct {
	mu sync.Mutex
	L  *lua.LState
}

// Globals removed from the script environment.
var strippedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"os",
	"io",
	"require",
	"package",
}

// newScriptRunner creates a runner with a sandboxed Lua state.
func newScriptRunner() *scriptRunner {
	L := lua.NewState()
	for _, name := range strippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return &scriptRunner{L: L}
}

// eval runs script with the value bound to the global "value".
// A string return fails the rule with that message; a true return fails
// with no message; any other return passes.
func (r *scriptRunner) eval(ctx context.Context, script string, value any) (msg string, failed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	L := r.L
	L.SetContext(ctx)
	defer L.RemoveContext()

	L.SetGlobal("value", toLua(L, value))

	top := L.GetTop()
	if err := L.DoString(script); err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrScript, err)
	}

	var ret lua.LValue = lua.LNil
	if L.GetTop() > top {
		ret = L.Get(top + 1)
	}
	L.SetTop(top)

	switch v := ret.(type) {
	case lua.LString:
		return string(v), true, nil
	case lua.LBool:
		return "", bool(v), nil
	default:
		return "", false, nil
	}
}

// toLua converts a Go value to its Lua representation.
func toLua(L *lua.LState, value any) lua.LValue {
	switch v := value.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(v)
	case string:
		return lua.LString(v)
	case int:
		return lua.LNumber(v)
	case int64:
		return lua.LNumber(v)
	case float32:
		return lua.LNumber(v)
	case float64:
		return lua.LNumber(v)
	case []any:
		tbl := L.NewTable()
		for _, item := range v {
			tbl.Append(toLua(L, item))
		}
		return tbl
	case map[string]any:
		tbl := L.NewTable()
		for key, item := range v {
			tbl.RawSetString(key, toLua(L, item))
		}
		return tbl
	default:
		return lua.LString(fmt.Sprint(v))
	}
}
