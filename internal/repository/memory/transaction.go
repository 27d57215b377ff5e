package memory

import "context"

// TxRunner satisfies payroll.TxRunner without transactional storage: fn runs
// against the same maps either way, so it is a plain pass-through.
type TxRunner struct{}

func (TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
