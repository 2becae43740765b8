package decoder

import (
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// trackingReader keeps the first failure of the underlying reader so it can be
// returned unchanged instead of the tokenizer's view of it.
type trackingReader struct {
	ctx context.Context
	r   io.Reader
	err error
	eof bool
}

func (t *trackingReader) Read(p []byte) (int, error) {
	if t.err != nil {
		return 0, t.err
	}
	if err := t.ctx.Err(); err != nil {
		t.err = err
		return 0, err
	}
	n, err := t.r.Read(p)
	switch {
	case err == io.EOF:
		t.eof = true
	case err != nil:
		t.err = err
	}
	return n, err
}

// cursor is the single pull position over one document.
type cursor struct {
	iter   *jsoniter.Iterator
	src    *trackingReader
	tokens int
}

func newCursor(ctx context.Context, r io.Reader, bufSize int) *cursor {
	src := &trackingReader{ctx: ctx, r: r}
	return &cursor{
		iter: jsoniter.Parse(jsoniter.ConfigDefault, src, bufSize),
		src:  src,
	}
}

func (c *cursor) next() jsoniter.ValueType {
	return c.iter.WhatIsNext()
}

// skip discards the next value including any nested subtree.
func (c *cursor) skip() {
	c.tokens++
	c.iter.Skip()
}

// failure returns the reader error unchanged if there is one, else the
// tokenizer error as a StructureError, else nil.
func (c *cursor) failure() error {
	if c.src.err != nil {
		return c.src.err
	}
	switch {
	case c.iter.Error == nil:
		return nil
	case c.iter.Error == io.EOF || c.src.eof:
		// the tokenizer reports a truncated document as a syntax error
		return &StructureError{Msg: "unexpected end of input", Token: c.tokens}
	default:
		return &StructureError{Msg: "malformed JSON", Token: c.tokens, Err: c.iter.Error}
	}
}

// end checks that only whitespace follows the root value.
func (c *cursor) end() error {
	next := c.next()
	if c.src.err != nil {
		return c.src.err
	}
	if next == jsoniter.InvalidValue && c.iter.Error == io.EOF {
		return nil
	}
	c.tokens++
	return &StructureError{Msg: "unexpected content after root object", Token: c.tokens}
}

// structure builds a StructureError at the current token, unless the cursor has
// already failed for another reason.
func (c *cursor) structure(msg string) error {
	if err := c.failure(); err != nil {
		return err
	}
	return &StructureError{Msg: msg, Token: c.tokens}
}
