// Package app wires a workspace, its actions and the refresh cascade into
// one application window.
package app

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/dshills/docshell/internal/action"
	"github.com/dshills/docshell/internal/config"
	"github.com/dshills/docshell/internal/document"
	"github.com/dshills/docshell/internal/plugin/lua"
	"github.com/dshills/docshell/internal/statestore"
	"github.com/dshills/docshell/internal/workspace"
)

// Application owns one window: its workspace, action registry, refresh
// coordinator and script engine.
type Application struct {
	cfg      *config.Config
	ws       *workspace.Workspace
	coord    *Coordinator
	registry *action.Registry
	scripts  *lua.Engine
	logger   *slog.Logger

	letter    func() byte
	quit      bool
	exitState statestore.WindowState
	warnings  ErrorList
}

// Options configures the application.
type Options struct {
	// Config supplies titles, limits, keys and scripts. Nil uses defaults.
	Config *config.Config

	// Window receives the window title.
	Window Window

	// Collaborators shared by every document.
	Persistence document.Persistence
	Dialogs     document.Dialogs
	Confirmer   document.Confirmer

	// Views creates a view for each document added to the workspace.
	Views workspace.ViewFactory

	// Logger receives application events. Nil discards them.
	Logger *slog.Logger

	// Letter picks the character Insert Random appends. Defaults to a
	// random ASCII letter.
	Letter func() byte
}

// New creates and wires an application. Failures in key overrides and
// scripts do not stop startup; they are reported by Warnings.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, NewComponentError("config", "validate", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	a := &Application{
		cfg:    cfg,
		logger: WithComponent(logger, "app"),
		letter: opts.Letter,
	}
	if a.letter == nil {
		a.letter = randomLetter
	}

	svc := document.Services{
		Persistence: opts.Persistence,
		Dialogs:     opts.Dialogs,
		Confirmer:   opts.Confirmer,
		SaveFilter:  cfg.Window.SaveFilter,
		MaxHistory:  cfg.History.MaxEntries,
		Logger:      logger,
	}

	// The workspace, registry and coordinator refer to each other, so the
	// refresher is attached once all three exist.
	a.ws = workspace.New(svc, workspace.WithViewFactory(opts.Views), workspace.WithLogger(logger))
	a.coord = NewCoordinator(cfg.App.Title, cfg.Window.DirtyMarker, a.ws, opts.Window, logger)
	a.registry = action.NewRegistry(a.ws, a.coord, logger)
	a.coord.SetRegistry(a.registry)
	a.ws.SetRefresher(a.coord)

	if err := a.registry.Register(a.builtinActions()...); err != nil {
		return nil, NewComponentError("actions", "register", err)
	}

	a.scripts = lua.NewEngine(a.registry, a.ws, logger)
	a.loadScripts()
	a.applyKeys()

	a.coord.Refresh()
	return a, nil
}

func (a *Application) loadScripts() {
	paths, err := a.cfg.PluginScripts()
	if err != nil {
		a.warn(NewComponentError("scripts", "list", err))
	}
	for _, path := range paths {
		if err := a.scripts.LoadFile(path); err != nil {
			a.warn(NewComponentError("scripts", "load", err))
		}
	}
}

// applyKeys rebinds actions named in the keys config, in label order.
func (a *Application) applyKeys() {
	labels := make([]string, 0, len(a.cfg.Keys))
	for label := range a.cfg.Keys {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	for _, label := range labels {
		if err := a.registry.Rebind(label, a.cfg.Keys[label]); err != nil {
			a.warn(NewComponentError("keys", label, err))
		}
	}
}

func (a *Application) warn(err error) {
	a.logger.Warn("startup problem", "error", err)
	a.warnings.Add(err)
}

// Warnings returns the non-fatal problems found during startup.
func (a *Application) Warnings() []error {
	return a.warnings.Errors()
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// Workspace returns the application's workspace.
func (a *Application) Workspace() *workspace.Workspace {
	return a.ws
}

// Registry returns the application's actions.
func (a *Application) Registry() *action.Registry {
	return a.registry
}

// Coordinator returns the refresh coordinator.
func (a *Application) Coordinator() *Coordinator {
	return a.coord
}

// Title returns the current window title.
func (a *Application) Title() string {
	return a.coord.Title()
}

// SetWindow replaces the window and refreshes it.
func (a *Application) SetWindow(w Window) {
	a.coord.SetWindow(w)
	a.coord.Refresh()
}

// Trigger runs the action bound to shortcut. handled is false if no
// action uses it.
func (a *Application) Trigger(shortcut string) (handled bool, err error) {
	return a.registry.Trigger(shortcut)
}

// Execute runs the action with the given label.
func (a *Application) Execute(label string) error {
	act, ok := a.registry.ByLabel(label)
	if !ok {
		return fmt.Errorf("execute %q: %w", label, action.ErrActionNotFound)
	}
	return act.Execute()
}

// Quit closes every document and marks the application done if all of
// them closed. A cancelled close leaves the application running.
func (a *Application) Quit() error {
	state := a.WindowState()
	closed, err := a.ws.CloseAll()
	if closed {
		a.quit = true
		a.exitState = state
		a.logger.Info("quit", "files", len(state.Files))
	}
	return err
}

// Quitting reports whether Quit has succeeded.
func (a *Application) Quitting() bool {
	return a.quit
}

// OpenFiles opens each path in order. Failures are collected and the
// remaining paths are still opened.
func (a *Application) OpenFiles(paths []string) error {
	var errs ErrorList
	for _, path := range paths {
		if _, err := a.ws.OpenPath(path); err != nil {
			errs.Add(err)
		}
	}
	return errs.AsError()
}

// EnsureDocument adds an empty document if none is open.
func (a *Application) EnsureDocument() {
	if a.ws.Len() == 0 {
		a.ws.NewDocument()
	}
}

// WindowState captures the file-backed documents and the focused one.
func (a *Application) WindowState() statestore.WindowState {
	state := statestore.WindowState{Current: -1}
	current := a.ws.CurrentDocument()
	for _, doc := range a.ws.Documents() {
		if !doc.HasPath() {
			continue
		}
		if doc == current {
			state.Current = len(state.Files)
		}
		state.Files = append(state.Files, doc.Path())
	}
	return state
}

// ExitState returns the window state to persist on exit: the state just
// before a successful Quit closed everything, or the current state.
func (a *Application) ExitState() statestore.WindowState {
	if a.quit {
		return a.exitState
	}
	return a.WindowState()
}

// SaveState stores the window state under the application title.
func (a *Application) SaveState(store statestore.Store, state statestore.WindowState) error {
	blob, err := state.Encode()
	if err != nil {
		return err
	}
	return store.Save(a.cfg.App.Title, blob)
}

// RestoreState reopens the files saved by SaveState and focuses the
// document that was current. It returns the loaded state; files that no
// longer open are skipped and reported in the error.
func (a *Application) RestoreState(store statestore.Store) (statestore.WindowState, error) {
	blob, ok, err := store.Load(a.cfg.App.Title)
	if err != nil || !ok {
		return statestore.WindowState{Current: -1}, err
	}
	state, err := statestore.DecodeWindowState(blob)
	if err != nil {
		return state, err
	}

	var errs ErrorList
	var focus *document.Document
	for i, path := range state.Files {
		doc, err := a.ws.OpenPath(path)
		if err != nil {
			errs.Add(err)
			continue
		}
		if i == state.Current {
			focus = doc
		}
	}
	if focus != nil {
		_ = a.ws.Focus(a.ws.IndexOf(focus))
	}

	a.logger.Info("session restored", "files", a.ws.Len(), "failed", errs.Len())
	return state, errs.AsError()
}

// Close releases the script engine.
func (a *Application) Close() error {
	return a.scripts.Close()
}
