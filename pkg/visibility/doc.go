// Package visibility coordinates animated hide/show transitions of stack
// items.
//
// Every item carries three visibility values ([Tiers]): the logical value
// the caller asked for, the layout value the constraint synthesizer sees,
// and the presentation value requested from the host. Outside an animation
// all three change together. Inside a [Transaction] the layout value is
// held back until the host's animation driver reports, so the item keeps
// its space while it fades.
//
// A [Coordinator] tracks one [State] per item:
//
//	Settled{Hidden}
//	  -- SetHidden outside a transaction -->  Settled{h}
//	  -- SetHidden inside a transaction  -->  Transitioning{From, To, Token}
//	Transitioning
//	  -- driver reports                  -->  Settled{To}
//	  -- SetHidden with another target   -->  Transitioning (old token cancelled)
//	  -- Detach                          -->  removed (token cancelled)
//
// Completion callbacks are queued and only run from [Coordinator.Step], so a
// callback never runs inside the call that requested the change. A
// cancelled token reports finished=false; a transaction completes once, with
// finished=true only if every token it created finished.
package visibility
