package form

import "context"

type validated[P, R any] struct {
	next  Submitter[P, R]
	check func(P) error
}

// Validate проверяет данные до мутации. Ошибка проверки переводит форму в error,
// мутация при этом не вызывается.
func Validate[P, R any](next Submitter[P, R], check func(P) error) Submitter[P, R] {
	return validated[P, R]{next: next, check: check}
}

func (v validated[P, R]) Mutate(ctx context.Context, p P) (R, error) {
	if err := v.check(p); err != nil {
		var zero R
		return zero, err
	}
	return v.next.Mutate(ctx, p)
}
