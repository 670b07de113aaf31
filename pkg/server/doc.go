// Package server serves mounted loom apps to remote clients over
// WebSocket.
//
// Each connection gets its own in-memory document, its own App, and its
// own single-goroutine session loop: the loop alternates between
// dispatching incoming event frames into the document (which runs bound
// handlers and may mark components dirty) and draining the app's
// scheduler, streaming the mount point's serialized markup to the client
// after every render pass. The session loop is the only goroutine that
// touches the document and the component tree, which is what makes the
// unlocked shared component state in pkg/vdom safe.
//
// Frames are JSON. Client to server:
//
//	{"type": "event", "ref": "h3", "event": "click"}
//
// Server to client:
//
//	{"type": "markup", "seq": 7, "html": "<button data-loom=\"h3\">…"}
package server
