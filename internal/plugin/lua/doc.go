// Package lua runs user scripts that add actions to the shell.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. They register actions through the global
// docshell module:
//
//	docshell.action{
//	    label = "Upper Case",
//	    shortcut = "4",
//	    kind = "transform",
//	    available = function(doc) return doc ~= nil and #doc.text > 0 end,
//	    run = function(text) return string.upper(text) end,
//	}
//
// A "transform" action is undoable: run receives the document text and
// returns the new text, which is applied as one history entry. A "direct"
// action receives a read-only document table (or nil) and may open new
// documents with docshell.open_document(title, text).
//
// The document table has the fields title, path, text, dirty, can_undo
// and can_redo.
package lua
