package store

import (
	"bytes"

	"github.com/iov-one/treasury/errors"
)

// cacheIterator merges a snapshot of cached items with the iterator of the
// backing store. Cached items shadow parent entries with the same key and
// deleted items hide them.
type cacheIterator struct {
	items []keyer
	idx   int

	parent     Iterator
	parentKey  []byte
	parentVal  []byte
	peeked     bool
	parentDone bool

	descending bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, descending bool) *cacheIterator {
	return &cacheIterator{
		items:      items,
		parent:     parent,
		descending: descending,
	}
}

func (i *cacheIterator) Next() (key, value []byte, err error) {
	for {
		if err := i.peekParent(); err != nil {
			return nil, nil, err
		}

		hasOwn := i.idx < len(i.items)
		if !hasOwn && i.parentDone {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		}

		if !hasOwn {
			i.peeked = false
			return i.parentKey, i.parentVal, nil
		}

		own := i.items[i.idx]
		if !i.parentDone {
			switch cmp := i.order(own.Key(), i.parentKey); {
			case cmp > 0:
				i.peeked = false
				return i.parentKey, i.parentVal, nil
			case cmp == 0:
				// Cached value shadows the parent one.
				i.peeked = false
			}
		}

		i.idx++
		if set, ok := own.(setItem); ok {
			return set.Key(), set.value, nil
		}
		// Deleted item, move on.
	}
}

// order compares two keys according to the iteration direction. Negative
// result means that a must be returned before b.
func (i *cacheIterator) order(a, b []byte) int {
	cmp := bytes.Compare(a, b)
	if i.descending {
		return -cmp
	}
	return cmp
}

func (i *cacheIterator) peekParent() error {
	if i.peeked || i.parentDone {
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentVal, i.peeked = key, value, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		i.parentDone = true
		return nil
	default:
		return err
	}
}

func (i *cacheIterator) Release() {
	i.parent.Release()
	i.items = nil
}
