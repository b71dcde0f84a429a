// Package stackfile reads and writes stack documents.
//
// A stack document describes one container: its configuration, its items,
// and optionally a script of visibility steps. Documents are TOML, YAML or
// JSON, chosen by file extension:
//
//	id = "card"
//	axis = "vertical"
//	distribution = "equalSpacing"
//	spacing = 8.0
//
//	[[items]]
//	id = "title"
//	height = 24.0
//
//	[[items]]
//	id = "body"
//
//	[[steps]]
//	action = "animate"
//	hide = ["body"]
//	duration = "1s"
//
//	[[steps]]
//	action = "advance"
//	duration = "1s"
//
// Every loaded document is validated; invalid documents fail with
// ErrCodeInvalidDocument and a message naming the offending field.
package stackfile
