package model

// TextProxy is a view over part of a Text run. It references the run's data
// without copying; normalization materializes it into a fresh Text node.
type TextProxy struct {
	text   *Text
	offset int
	length int
}

// NewTextProxy returns a view over length characters of t starting at the
// given character offset.
func NewTextProxy(t *Text, offset, length int) (*TextProxy, error) {
	size := t.OffsetSize()
	if offset < 0 || offset > size {
		return nil, newError(ErrTextProxyWrongOffset, "offset %d outside text of size %d", offset, size)
	}
	if length < 0 || offset+length > size {
		return nil, newError(ErrTextProxyWrongLength, "length %d outside text of size %d at offset %d", length, size, offset)
	}
	return &TextProxy{text: t, offset: offset, length: length}, nil
}

// TextNode returns the underlying text run.
func (p *TextProxy) TextNode() *Text {
	return p.text
}

// OffsetInText returns the view's start offset inside the run.
func (p *TextProxy) OffsetInText() int {
	return p.offset
}

// Length returns the number of characters the view covers.
func (p *TextProxy) Length() int {
	return p.length
}

// Data returns the referenced substring.
func (p *TextProxy) Data() string {
	runes := []rune(p.text.Data())
	return string(runes[p.offset : p.offset+p.length])
}
