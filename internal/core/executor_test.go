package core

import "context"

// fakeExecutor records every query execution and replays canned results.
// Select always answers with rows; SelectOne pops oneRows in call order.
type fakeExecutor struct {
	rows    []Row
	oneRows []Row
	err     error

	queries []string
	args    [][]any
}

func (f *fakeExecutor) Select(_ context.Context, query string, args ...any) ([]Row, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeExecutor) SelectOne(_ context.Context, query string, args ...any) (Row, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.oneRows) == 0 {
		return nil, nil
	}
	row := f.oneRows[0]
	f.oneRows = f.oneRows[1:]
	return row, nil
}
