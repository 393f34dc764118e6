package commands

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// DefaultExpireBatchSize bounds how many orders one run cancels.
const DefaultExpireBatchSize = 100

var ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
	"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
)

// ExpirePendingOrdersCommand asks to cancel Pending orders placed more than
// olderThan ago.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

// NewExpirePendingOrdersCommand validates the age threshold. A non-positive
// batchSize falls back to DefaultExpireBatchSize.
func NewExpirePendingOrdersCommand(olderThan time.Duration, batchSize int) (ExpirePendingOrdersCommand, error) {
	if olderThan <= 0 {
		return ExpirePendingOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"olderThan", fmt.Errorf("%s is not greater than 0", olderThan))
	}
	if batchSize <= 0 {
		batchSize = DefaultExpireBatchSize
	}

	return ExpirePendingOrdersCommand{
		olderThan: olderThan,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c ExpirePendingOrdersCommand) BatchSize() int {
	return c.batchSize
}
