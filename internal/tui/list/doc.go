// Package listview provides the scrolling call list and its expand/collapse
// state for Bubble Tea screens.
//
// VirtualListModel renders only the rows around the selection, so long call
// histories stay responsive. Disclosure records which single row is expanded
// and asks the caller to load that row's detail when it opens.
package listview
