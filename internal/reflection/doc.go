// Package reflection provides the in-memory reflection tree that the regex
// filter operates on.
//
// A Project owns a tree of Declarations (modules, classes, methods, fields,
// functions, ...). Declarations carry visibility flags and can be removed from
// the project together with their descendants.
//
// # Architecture
//
// The main components are:
//   - Node: read/flag contract consumed by the filter pipeline
//   - Declaration: concrete tree node owned by a Project
//   - Project: tree root with removal and traversal
//   - Decode / Encode: YAML or JSON tree documents
//
// # Usage
//
// Load a tree document and walk it:
//
//	project, err := reflection.Decode(f)
//	if err != nil {
//	    return err
//	}
//	project.Walk(func(d *reflection.Declaration) bool {
//	    fmt.Println(d.Name())
//	    return true
//	})
//
// # Removal
//
// RemoveReflection detaches a declaration and its whole subtree. Removing a
// declaration that was already detached, directly or through an ancestor, is a
// no-op, so callers may queue parents and children in any order.
//
// # Concurrency
//
// Project is not safe for concurrent mutation. Conversion runs are sequential.
package reflection
