package stack_test

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stackview/pkg/memhost"
	"github.com/matzehuels/stackview/pkg/stack"
)

func ExampleSynthesize() {
	items := []stack.Item{{ID: "title"}, {ID: "body"}}
	cfg := stack.Config{Axis: stack.Vertical, Spacing: 8}

	for _, c := range stack.Synthesize("card", cfg, items, nil) {
		fmt.Println(c)
	}
	// Output:
	// body.top == title.bottom + 8 @1000 [SV-spacing:title:body]
	// title.top == card.top @1000 [SV-canvas-connection-leading:title]
	// body.bottom == card.bottom @1000 [SV-canvas-connection-trailing:body]
	// title.leading == card.leading @1000 [SV-alignment-leading:title]
	// title.trailing == card.trailing @1000 [SV-alignment-trailing:title]
	// body.leading == card.leading @1000 [SV-alignment-leading:body]
	// body.trailing == card.trailing @1000 [SV-alignment-trailing:body]
}

func ExampleContainer_Animate() {
	host := memhost.New()
	c, _ := stack.New("card", host, stack.WithConfig(stack.Config{Axis: stack.Vertical}))
	_ = c.AddItem("title")
	_ = c.AddItem("body")

	_ = c.Animate(context.Background(), stack.AnimationOptions{Duration: time.Second},
		func(ctx context.Context) error { return c.SetHidden(ctx, 1, true) },
		func(finished bool) { fmt.Println("finished:", finished) })

	fmt.Println("during:", c.Items()[1].State)
	host.Advance(time.Second)
	fmt.Println("after:", c.Items()[1].State)
	// Output:
	// during: transitioning(visible->hidden)
	// finished: true
	// after: settled(hidden)
}
