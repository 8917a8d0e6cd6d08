// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Its [tasks.Collection] is the single source of truth for remote state and is
// mutated exclusively by resolution messages:
//  1. tasksLoadedMsg : replaces the whole collection after a list fetch
//  2. taskCreatedMsg : appends the server-assigned task
//  3. taskSavedMsg : overwrites a renamed task and closes its edit session
//  4. taskToggledMsg : overwrites a task whose completion flag flipped
//  5. taskDeletedMsg : removes one task by id
//
// Keystrokes never touch the collection directly. They dispatch commands
// against the task store and Update applies whatever the store confirms, so a
// failed call leaves the screen showing exactly what the server still holds.
// Deletes issued by the clear-completed binding are batched as independent
// commands; their resolutions may interleave with anything else in flight.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
