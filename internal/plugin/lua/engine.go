package lua

import (
	"fmt"
	"log/slog"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/docshell/internal/action"
	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/engine/history"
)

// ModuleName is the global table scripts use to talk to the shell.
const ModuleName = "docshell"

// Registrar receives the actions scripts declare.
type Registrar interface {
	Register(actions ...*action.Action) error
}

// Opener adds new documents to the workspace.
type Opener interface {
	Create(title, contents string) *document.Document
}

// Engine loads scripts into one shared State and turns their
// declarations into actions.
type Engine struct {
	state    *State
	registry Registrar
	opener   Opener
	logger   *slog.Logger

	loading string
	actions []*action.Action
}

// NewEngine creates an engine bound to registry and opener.
// A nil logger discards output.
func NewEngine(registry Registrar, opener Opener, logger *slog.Logger, opts ...StateOption) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	e := &Engine{
		state:    NewState(opts...),
		registry: registry,
		opener:   opener,
		logger:   logger.With("component", "lua"),
	}
	e.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"action":        e.luaAction,
		"open_document": e.luaOpenDocument,
		"log":           e.luaLog,
	})
	return e
}

// LoadFile runs the script at path. Failures are returned as *ScriptError.
func (e *Engine) LoadFile(path string) error {
	return e.load(path, func() error { return e.state.DoFile(path) })
}

// LoadString runs code as a script called name.
func (e *Engine) LoadString(name, code string) error {
	return e.load(name, func() error { return e.state.DoString(code) })
}

func (e *Engine) load(name string, do func() error) error {
	e.loading = name
	defer func() { e.loading = "" }()

	before := len(e.actions)
	if err := do(); err != nil {
		e.logger.Warn("script failed", "script", name, "error", err)
		return &ScriptError{Script: name, Err: err}
	}
	e.logger.Info("script loaded", "script", name, "actions", len(e.actions)-before)
	return nil
}

// Actions returns the actions registered by scripts, in load order.
func (e *Engine) Actions() []*action.Action {
	return append([]*action.Action(nil), e.actions...)
}

// Close releases the Lua state. Script actions fail afterwards.
func (e *Engine) Close() error {
	return e.state.Close()
}

// luaAction implements docshell.action{label, shortcut, kind, available, run}.
func (e *Engine) luaAction(L *lua.LState) int {
	decl := L.CheckTable(1)

	label := lua.LVAsString(decl.RawGetString("label"))
	if label == "" {
		L.ArgError(1, "label is required")
	}
	run, ok := decl.RawGetString("run").(*lua.LFunction)
	if !ok {
		L.ArgError(1, "run must be a function")
	}

	script := e.loading
	opts := []action.Option{action.WithShortcut(lua.LVAsString(decl.RawGetString("shortcut")))}
	if avail, ok := decl.RawGetString("available").(*lua.LFunction); ok {
		opts = append(opts, action.WithPredicate(e.predicate(script, label, avail)))
	}

	var a *action.Action
	switch kind := lua.LVAsString(decl.RawGetString("kind")); kind {
	case "", "direct":
		a = action.NewDirect(label, e.direct(script, label, run), opts...)
	case "transform":
		a = action.NewUndoable(label, e.transform(script, label, run), opts...)
	default:
		L.ArgError(1, fmt.Sprintf("unknown kind %q", kind))
	}

	if err := e.registry.Register(a); err != nil {
		L.RaiseError("%s", err.Error())
	}
	e.actions = append(e.actions, a)
	return 0
}

// luaOpenDocument implements docshell.open_document(title, text).
func (e *Engine) luaOpenDocument(L *lua.LState) int {
	title := L.CheckString(1)
	text := L.OptString(2, "")
	if e.opener == nil {
		L.RaiseError("open_document: no workspace")
	}
	e.opener.Create(title, text)
	return 0
}

// luaLog implements docshell.log(message).
func (e *Engine) luaLog(L *lua.LState) int {
	e.logger.Info(L.CheckString(1), "script", e.loading)
	return 0
}

// predicate adapts a Lua availability function. Errors count as unavailable.
func (e *Engine) predicate(script, label string, fn *lua.LFunction) action.Predicate {
	return func(doc *document.Document) bool {
		ret, err := e.state.Call(fn, e.docTable(doc))
		if err != nil {
			e.logger.Warn("availability check failed", "script", script, "action", label, "error", err)
			return false
		}
		return lua.LVAsBool(ret)
	}
}

func (e *Engine) direct(script, label string, fn *lua.LFunction) action.DirectHandler {
	return func(doc *document.Document) error {
		if _, err := e.state.Call(fn, e.docTable(doc)); err != nil {
			return &ScriptError{Script: script, Action: label, Err: err}
		}
		return nil
	}
}

// transform returns a factory that applies fn's result as one history
// entry. An unchanged text records nothing.
func (e *Engine) transform(script, label string, fn *lua.LFunction) action.CommandFactory {
	return func(doc *document.Document) (history.Command, error) {
		ret, err := e.state.Call(fn, lua.LString(doc.Contents()))
		if err != nil {
			return nil, &ScriptError{Script: script, Action: label, Err: err}
		}
		text, ok := ret.(lua.LString)
		if !ok {
			return nil, &ScriptError{
				Script: script,
				Action: label,
				Err:    fmt.Errorf("%w, got %s", ErrBadReturn, ret.Type()),
			}
		}
		if string(text) == doc.Contents() {
			return nil, nil
		}
		return document.NewSetContentsCommand(doc, label, string(text)), nil
	}
}

// docTable builds the read-only view of doc that scripts receive.
func (e *Engine) docTable(doc *document.Document) lua.LValue {
	if doc == nil {
		return lua.LNil
	}
	L := e.state.L
	t := L.NewTable()
	t.RawSetString("title", lua.LString(doc.Title()))
	t.RawSetString("path", lua.LString(doc.Path()))
	t.RawSetString("text", lua.LString(doc.Contents()))
	t.RawSetString("dirty", lua.LBool(doc.IsDirty()))
	t.RawSetString("can_undo", lua.LBool(doc.CanUndo()))
	t.RawSetString("can_redo", lua.LBool(doc.CanRedo()))
	return t
}
