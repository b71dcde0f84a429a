// Package pkg provides the libraries behind Stackview.
//
// # Overview
//
// Stackview arranges an ordered list of externally owned elements along one
// axis. Rather than computing frames, a container describes its layout as an
// identified constraint graph and lets the host's solver produce geometry.
// The pkg directory is organized into three areas:
//
//  1. Layout - [constraint], [stack], [visibility] and [reconcile]
//  2. Hosts and documents - [memhost] and [stackfile]
//  3. Tooling - [pipeline], [render] and [cache], used by the CLI
//
// # Architecture
//
// The data flow of one synthesis pass:
//
//	stack.Container (config + items + visibility)
//	         ↓
//	    [stack] Synthesize (constraints + spacers)
//	         ↓
//	    [reconcile] (install only what changed)
//	         ↓
//	    Host constraint store → solver → geometry
//
// The CLI runs the same pass against [memhost] and turns the result into a
// snapshot:
//
//	Stack document (TOML/YAML/JSON)
//	         ↓
//	    [stackfile] Load
//	         ↓
//	    [pipeline] Synthesize / Simulate
//	         ↓
//	    [render] (DOT → SVG/PNG/PDF)
//
// # Quick Start
//
// Build a container on the in-memory host and hide an item with animation:
//
//	host := memhost.New()
//	c, _ := stack.New("card", host, stack.WithConfig(stack.Config{
//	    Axis:         stack.Vertical,
//	    Distribution: stack.DistributeEqualSpacing,
//	    Spacing:      8,
//	}))
//	_ = c.AddItem("title")
//	_ = c.AddItem("body")
//
//	_ = c.Animate(ctx, stack.AnimationOptions{Duration: time.Second},
//	    func(ctx context.Context) error { return c.SetHidden(ctx, 1, true) },
//	    func(finished bool) { fmt.Println("done:", finished) })
//
//	host.CompleteAll()
//	c.Step() // done: true
//
// # Main Packages
//
// [constraint] - Value types of a constraint graph: attributes, relations,
// priorities and the "SV-" identifier namespace.
//
// [stack] - The container, its configuration, the constraint synthesizer and
// the spacer registry.
//
// [visibility] - The per-item hide/show state machine and animation
// transactions.
//
// [reconcile] - Identifier-keyed diffing and installation of successive
// constraint generations.
//
// [memhost] - An in-memory Host with a simulated animation clock.
//
// [stackfile] - Stack documents and their scripted steps.
//
// [pipeline] - Load, synthesize, simulate and render used by the CLI.
//
// [render] - Constraint graphs as Graphviz DOT and SVG, PNG or PDF.
//
// [cache] - Null, file and Redis caches for synthesis results and artifacts.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/stack/...     # Specific package
//	go test -run Example ./...  # Examples only
//
// Set STACKVIEW_TEST_REDIS to a redis URL to run the live Redis cache tests.
//
// [constraint]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/constraint
// [stack]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/stack
// [visibility]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/visibility
// [reconcile]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/reconcile
// [memhost]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/memhost
// [stackfile]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/stackfile
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/stackview/pkg/cache
package pkg
