package lflist

// wordoffset applied to stored words so that valid values never
// collide with the reserved Emptyslot/Sentinelslot flag values.
const wordoffset = uint64(5)

// WordList an address free-list over List. Words are carried in the
// slot flags themselves, the payload cell is zero sized.
type WordList struct {
	inner *List[struct{}]
}

// NewWordList create a word list with `bufcap` slots per page.
func NewWordList(bufcap int64) *WordList {
	return &WordList{inner: NewList[struct{}](bufcap)}
}

// Push insert one word.
func (wlist *WordList) Push(word uint64) {
	wlist.inner.Push(word+wordoffset, struct{}{})
}

// Exclusivepush single-producer variant of Push.
func (wlist *WordList) Exclusivepush(word uint64) {
	wlist.inner.Exclusivepush(word+wordoffset, struct{}{})
}

// Pop return the most recently pushed word still present.
func (wlist *WordList) Pop() (uint64, bool) {
	tag, _, ok := wlist.inner.Pop()
	if !ok {
		return 0, false
	}
	return tag - wordoffset, true
}

// Dropoutall detach and return every word in the list, nil when
// empty.
func (wlist *WordList) Dropoutall() []uint64 {
	entries := wlist.inner.Dropoutall()
	if entries == nil {
		return nil
	}
	words := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		words = append(words, entry.Tag-wordoffset)
	}
	return words
}

// Prependwith splice the entire contents of other onto the front of
// this list.
func (wlist *WordList) Prependwith(other *WordList) {
	wlist.inner.Prependwith(other.inner)
}

// Count approximate number of words in the list.
func (wlist *WordList) Count() int64 {
	return wlist.inner.Count()
}

// Release tear down the list.
func (wlist *WordList) Release() {
	wlist.inner.Release()
}
