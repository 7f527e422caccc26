// Package accordion implements the terminal accordion: a vertical stack of
// configured panels where at most one unpinned panel is open at a time and
// any number of panels can be pinned open.
//
// The package is the orchestrator. On every render pass it walks the
// configured panels in order and for each one merges layout attributes,
// resolves component properties against the host store, and asks the
// provider registry for a fresh content provider. Open panels show the
// provider's Render output clipped to the panel's row cap; closed panels
// show a one-line summary. A panel whose component is not registered shows
// an inline "Component not found" placeholder and the rest of the stack
// renders normally.
//
// # Events
//
// Header activation goes through the collapsible primitive (Propose), which
// proposes the full next open membership. The panel machine then applies the
// exclusive-except-pinned rule. Pin toggles go straight to the machine.
//
// # Key Bindings
//
//   - ↑/k, ↓/j, tab: move focus between panel headers
//   - enter/space: open or close the focused panel
//   - p: pin or unpin the focused panel
//   - pgup/pgdown: scroll the stack
//   - any other key: forwarded to the focused open panel's provider
//
// # Concurrency
//
// All state is owned by the Bubble Tea update goroutine. Other goroutines
// (config watcher, state sync clients) deliver ReloadMsg and StateSetMsg
// through tea.Program.Send.
package accordion
