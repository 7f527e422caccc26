// Package statesync exposes the accordion's host state over WebSocket.
//
// A running accordion can be observed and driven from another process. Each
// client receives a snapshot of every state value on connect and a "changed"
// message after every write. Clients may write values with a "set" message;
// writes are handed to a Writer, which the CLI wires to tea.Program.Send so
// that the store is only ever mutated on the UI update goroutine.
//
// # Messages
//
// All frames are JSON text messages:
//
//	{"type":"snapshot","state":{"count":0,"progress":45}}
//	{"type":"set","name":"count","value":3}
//	{"type":"changed","name":"count","value":3}
//	{"type":"error","error":"unknown state name \"cnt\""}
//
// Only names already present in the store can be written.
//
// # Usage Example
//
//	srv := statesync.New(statesync.Config{Port: 7420}, st, func(name string, v any) {
//	    program.Send(accordion.StateSetMsg{Name: name, Value: v, Source: "ws"})
//	})
//	go srv.Start(ctx)
//
// # Thread Safety
//
// The server is safe for concurrent use. Store change notifications never
// block on slow clients; a client whose send buffer is full misses updates
// until it drains.
package statesync
