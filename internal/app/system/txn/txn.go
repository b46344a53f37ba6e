// Package txn wraps multi-document MongoDB transactions.
//
// Transactions require a replica set or mongos; standalone servers reject
// them. Callers that have a non-transactional fallback use IsNotSupported
// to detect that case and retry without a session.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a single multi-document transaction.
// All store calls made by fn must use the provided session context.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(sc mongo.SessionContext) error) error {
	sess, err := client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// Error codes the server returns when transactions are unavailable:
// 20 IllegalOperation, 51 (legacy illegal operation), 263 OperationNotSupportedInTransaction.
var notSupportedCodes = map[int32]bool{
	20:  true,
	51:  true,
	263: true,
}

// keyword pairs that mark a transaction-unsupported error when the server
// does not surface a structured CommandError.
var notSupportedPairs = [][2]string{
	{"transaction", "replica set"},
	{"transaction", "session"},
	{"transaction", "illegal operation"},
	{"session", "not supported"},
}

// IsNotSupported reports whether err indicates the server cannot run
// multi-document transactions (standalone mongod, old server version).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && notSupportedCodes[cmdErr.Code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pair := range notSupportedPairs {
		if strings.Contains(msg, pair[0]) && strings.Contains(msg, pair[1]) {
			return true
		}
	}
	return false
}
