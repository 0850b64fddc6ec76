package lflist

// objecttag fixed all-bits-set tag marking a slot as valid and
// untagged, the object itself lives in the payload cell.
const objecttag = ^uint64(0)

// ObjectList an object pool over List carrying richer per-slot
// metadata objects.
type ObjectList[T any] struct {
	inner *List[T]
}

// NewObjectList create an object list with `bufcap` slots per page.
func NewObjectList[T any](bufcap int64) *ObjectList[T] {
	return &ObjectList[T]{inner: NewList[T](bufcap)}
}

// Push insert one object.
func (olist *ObjectList[T]) Push(obj T) {
	olist.inner.Push(objecttag, obj)
}

// Exclusivepush single-producer variant of Push.
func (olist *ObjectList[T]) Exclusivepush(obj T) {
	olist.inner.Exclusivepush(objecttag, obj)
}

// Pop return the most recently pushed object still present.
func (olist *ObjectList[T]) Pop() (T, bool) {
	_, obj, ok := olist.inner.Pop()
	return obj, ok
}

// Dropoutall detach and return every object in the list, nil when
// empty.
func (olist *ObjectList[T]) Dropoutall() []T {
	entries := olist.inner.Dropoutall()
	if entries == nil {
		return nil
	}
	objs := make([]T, 0, len(entries))
	for _, entry := range entries {
		objs = append(objs, entry.Data)
	}
	return objs
}

// Prependwith splice the entire contents of other onto the front of
// this list.
func (olist *ObjectList[T]) Prependwith(other *ObjectList[T]) {
	olist.inner.Prependwith(other.inner)
}

// Count approximate number of objects in the list.
func (olist *ObjectList[T]) Count() int64 {
	return olist.inner.Count()
}

// Release tear down the list.
func (olist *ObjectList[T]) Release() {
	olist.inner.Release()
}
