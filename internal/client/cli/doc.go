// Package cli provides the interactive SkillShare command-line client.
//
// App wires the resource services into a read–eval–print loop. Each command
// fetches what it shows, prints a loading, empty, error or populated state,
// and refetches after a mutation instead of patching local copies.
//
// Mutating commands on posts, courses and comments are only offered to the
// owner of the resource, compared through identity.CanModify. Repeating a
// gesture while the same one is still in flight is rejected by the gate.
//
// App also acts as the client.Navigator: when the server rejects the session,
// the HTTP client clears it and App switches back to the login view.
package cli
