package visibility

import (
	"context"

	"github.com/google/uuid"

	"github.com/matzehuels/stackview/pkg/constraint"
)

// Transaction groups the visibility changes requested inside one animation.
// It is created by [Coordinator.Begin] and travels on the context passed to
// the animation body.
type Transaction struct {
	id         string
	completion func(finished bool)

	tokens   []*Token
	pending  int
	finished bool

	open     bool
	reported bool
	done     bool
}

// ID returns the transaction identifier.
func (tx *Transaction) ID() string { return tx.id }

// Done reports whether the transaction's completion has been queued.
func (tx *Transaction) Done() bool { return tx.done }

// Tokens returns the number of tokens created inside the transaction.
func (tx *Transaction) Tokens() int { return len(tx.tokens) }

// Token is one in-flight visibility change. It resolves exactly once.
type Token struct {
	ID   string
	Item constraint.ElementID
	From bool
	To   bool

	tx       *Transaction
	resolved bool
}

func newToken(item constraint.ElementID, from, to bool, tx *Transaction) *Token {
	return &Token{ID: uuid.NewString(), Item: item, From: from, To: to, tx: tx}
}

type txKey struct{}

// WithTransaction returns a copy of ctx carrying tx.
func WithTransaction(ctx context.Context, tx *Transaction) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TransactionFrom returns the transaction carried by ctx, if any.
func TransactionFrom(ctx context.Context) (*Transaction, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txKey{}).(*Transaction)
	return tx, ok && tx != nil
}
