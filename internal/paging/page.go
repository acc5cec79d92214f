// paging содержит чистую логику постраничных коллекций:
// дескриптор запрашиваемой страницы, страницу результата с её инвариантами
// и вычисление окна кнопок пагинации.
package paging

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

var (
	// ErrInvalidDescriptor — отрицательный индекс или неположительный размер страницы.
	ErrInvalidDescriptor = errors.New("invalid page descriptor")
	// ErrInvalidResult — страница нарушает инварианты Result.
	ErrInvalidResult = errors.New("invalid page result")
)

// Descriptor идентифицирует одну страницу серверной коллекции.
//
// Особенности:
//   - Index — 0-based;
//   - Params — дополнительные параметры сортировки/фильтрации, непрозрачные для ядра;
//   - после выдачи запроса дескриптор не меняется: WithParam возвращает копию.
type Descriptor struct {
	Index  int
	Size   int
	Params url.Values
}

// NewDescriptor создаёт дескриптор без дополнительных параметров.
func NewDescriptor(index, size int) Descriptor {
	return Descriptor{Index: index, Size: size}
}

// WithParam возвращает копию дескриптора с установленным параметром.
// Пустое значение удаляет параметр.
func (d Descriptor) WithParam(key, value string) Descriptor {
	params := make(url.Values, len(d.Params)+1)
	for k, v := range d.Params {
		params[k] = append([]string(nil), v...)
	}

	if value == "" {
		params.Del(key)
	} else {
		params.Set(key, value)
	}

	d.Params = params
	return d
}

// WithIndex возвращает копию дескриптора, указывающую на другую страницу.
func (d Descriptor) WithIndex(index int) Descriptor {
	return Descriptor{Index: index, Size: d.Size, Params: d.Params}
}

// Param возвращает значение параметра или пустую строку.
func (d Descriptor) Param(key string) string {
	return d.Params.Get(key)
}

// Validate проверяет предусловия: Index >= 0, Size > 0.
func (d Descriptor) Validate() error {
	if d.Index < 0 {
		return fmt.Errorf("%w: index %d < 0", ErrInvalidDescriptor, d.Index)
	}

	if d.Size <= 0 {
		return fmt.Errorf("%w: size %d <= 0", ErrInvalidDescriptor, d.Size)
	}

	return nil
}

// Key — детерминированное строковое представление (параметры сортируются по ключу).
func (d Descriptor) Key() string {
	key := "p=" + strconv.Itoa(d.Index) + "&s=" + strconv.Itoa(d.Size)
	if enc := d.Params.Encode(); enc != "" {
		key += "&" + enc
	}

	return key
}

// Result — одна страница результатов.
//
// Инварианты (проверяются Validate):
//   - TotalPages == ceil(TotalItems / PageSize) при PageSize > 0;
//   - len(Items) <= PageSize;
//   - PageIndex < TotalPages, либо TotalPages == 0 при TotalItems == 0.
type Result[T any] struct {
	Items      []T `json:"items"`
	PageIndex  int `json:"page_index"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TotalPagesFor — ceil(totalItems / size); 0 при size <= 0 или totalItems <= 0.
func TotalPagesFor(totalItems, size int) int {
	if size <= 0 || totalItems <= 0 {
		return 0
	}

	return (totalItems + size - 1) / size
}

// NewResult собирает страницу для дескриптора d с пересчётом TotalPages.
func NewResult[T any](items []T, d Descriptor, totalItems int) Result[T] {
	return Result[T]{
		Items:      items,
		PageIndex:  d.Index,
		PageSize:   d.Size,
		TotalItems: totalItems,
		TotalPages: TotalPagesFor(totalItems, d.Size),
	}
}

// Slice вырезает страницу d из полного упорядоченного набора all.
// Страница за пределами набора возвращается пустой.
func Slice[T any](all []T, d Descriptor) Result[T] {
	start := d.Index * d.Size
	if start > len(all) || d.Size <= 0 || d.Index < 0 {
		start = len(all)
	}

	end := start + d.Size
	if end > len(all) {
		end = len(all)
	}

	items := make([]T, end-start)
	copy(items, all[start:end])

	return NewResult(items, d, len(all)).ClampPastEnd()
}

// ClampPastEnd приводит пустую страницу за концом непустой коллекции
// (PageIndex >= TotalPages) к последней странице без элементов.
// Так апстрим отвечает на ?page=99 или после удаления последнего события
// на последней странице. Остальные страницы возвращаются как есть.
func (r Result[T]) ClampPastEnd() Result[T] {
	if len(r.Items) != 0 || r.TotalPages <= 0 || r.PageIndex < r.TotalPages {
		return r
	}

	if r.TotalPages != TotalPagesFor(r.TotalItems, r.PageSize) {
		return r
	}

	r.PageIndex = r.TotalPages - 1
	if r.Items == nil {
		r.Items = []T{}
	}

	return r
}

// Empty сообщает, что на странице нет элементов.
func (r Result[T]) Empty() bool {
	return len(r.Items) == 0
}

// Last сообщает, что страница последняя (или коллекция пуста).
func (r Result[T]) Last() bool {
	return r.TotalPages == 0 || r.PageIndex >= r.TotalPages-1
}

// Validate проверяет инварианты страницы.
func (r Result[T]) Validate() error {
	if r.PageSize <= 0 {
		return fmt.Errorf("%w: page size %d <= 0", ErrInvalidResult, r.PageSize)
	}

	if r.PageIndex < 0 || r.TotalItems < 0 {
		return fmt.Errorf("%w: negative index or total", ErrInvalidResult)
	}

	if want := TotalPagesFor(r.TotalItems, r.PageSize); r.TotalPages != want {
		return fmt.Errorf("%w: total pages %d, want %d", ErrInvalidResult, r.TotalPages, want)
	}

	if len(r.Items) > r.PageSize {
		return fmt.Errorf("%w: %d items on page of %d", ErrInvalidResult, len(r.Items), r.PageSize)
	}

	if r.TotalPages == 0 {
		if len(r.Items) != 0 {
			return fmt.Errorf("%w: items on an empty collection", ErrInvalidResult)
		}

		return nil
	}

	if r.PageIndex >= r.TotalPages {
		return fmt.Errorf("%w: page %d of %d", ErrInvalidResult, r.PageIndex, r.TotalPages)
	}

	return nil
}
