// Package ui contains the Bubble Tea shell for one editor window. It is a
// stand-in for the host webview: it renders the pane layout and open tabs
// straight from the stores, feeds pointer motion onto the window-local bus
// for the drag arbiter, and keeps the chat region rectangle up to date so
// drop arbitration has something to hit-test against.
//
// The model deliberately owns no replicated state. Everything it draws
// comes from the file and layout stores; everything it changes goes through
// store operations, so a keypress here and a sync message from another
// window travel the same code path.
package ui
