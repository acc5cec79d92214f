package screens

import (
	"context"

	"github.com/pribylovaa/events-client/internal/fetch"
	"github.com/pribylovaa/events-client/internal/paging"
)

// screen — экран одного списка, скрывающий тип элементов.
type screen interface {
	request(ctx context.Context, d paging.Descriptor) (uint64, error)
	retry(ctx context.Context) (uint64, error)
	wait(ctx context.Context, gen uint64) (PageView, error)
	view() PageView
	close()
}

// listScreen — экран поверх контроллера выборки.
type listScreen[T any] struct {
	ctrl       *fetch.Controller[T]
	items      func([]T) any
	maxVisible int
}

func newListScreen[T any](ctrl *fetch.Controller[T], items func([]T) any, maxVisible int) *listScreen[T] {
	return &listScreen[T]{ctrl: ctrl, items: items, maxVisible: maxVisible}
}

func (s *listScreen[T]) request(ctx context.Context, d paging.Descriptor) (uint64, error) {
	return s.ctrl.Request(ctx, d)
}

func (s *listScreen[T]) retry(ctx context.Context) (uint64, error) {
	return s.ctrl.Retry(ctx)
}

func (s *listScreen[T]) wait(ctx context.Context, gen uint64) (PageView, error) {
	st, err := s.ctrl.Wait(ctx, gen)
	if err != nil {
		return PageView{}, err
	}

	return buildView(s.ctrl.List(), st, s.items, s.maxVisible), nil
}

func (s *listScreen[T]) view() PageView {
	return buildView(s.ctrl.List(), s.ctrl.State(), s.items, s.maxVisible)
}

func (s *listScreen[T]) close() {
	s.ctrl.Close()
}
