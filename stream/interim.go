package stream

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// Common splicing errors.
var (
	// ErrAlreadySpliced is returned when a half is spliced a second time.
	ErrAlreadySpliced = errors.New("stream: half already spliced")
	// ErrClosed is returned for writes after the handle was closed.
	ErrClosed = errors.New("stream: handle closed")
)

// Handle is a duplex stream usable before the real stream exists. It is
// returned synchronously by Interim and is a valid substitute anywhere a
// synchronously produced stream is expected.
type Handle struct {
	req  *RequestHalf
	resp *ResponseHalf
}

// Interim creates a Handle and synchronously invokes setup with its two
// halves. setup decides when the real stream exists, splices each half
// onto it exactly once, and is responsible for reporting failures of its
// asynchronous step through the invocation's callback.
func Interim(setup func(req *RequestHalf, resp *ResponseHalf)) *Handle {
	h := &Handle{
		req:  &RequestHalf{},
		resp: &ResponseHalf{rd: newReadBuffer()},
	}
	setup(h.req, h.resp)
	return h
}

// Write queues or forwards outgoing bytes. Before the request half is
// spliced, bytes are buffered in order; afterwards they go straight to
// the real destination.
func (h *Handle) Write(p []byte) (int, error) { return h.req.write(p) }

// Read returns incoming bytes once the response half is spliced and data
// arrives. It blocks until data is available, the source is exhausted
// (io.EOF), or the response half fails.
func (h *Handle) Read(p []byte) (int, error) { return h.resp.rd.Read(p) }

// Close signals that no more writes will occur. A close before splicing
// is remembered and applied when the request half is spliced.
func (h *Handle) Close() error { return h.req.close() }

// Splice connects both halves to rw: buffered writes are flushed to it
// and its output becomes the handle's read side.
func (h *Handle) Splice(rw io.ReadWriter) error {
	if err := h.req.Splice(rw); err != nil {
		return err
	}
	return h.resp.Splice(rw)
}

// RequestHalf is the outgoing half of an interim handle. It holds writes
// issued against the handle until Splice transfers them, in order, to the
// real destination. Two states: buffering, then spliced, exactly once.
type RequestHalf struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	dst     io.Writer
	spliced bool
	closed  bool
}

// Splice transfers all buffered bytes to w and forwards subsequent
// writes to it. If the handle was already closed, the destination is
// closed (when it is an io.Closer) after the flush. A second call
// returns ErrAlreadySpliced.
func (r *RequestHalf) Splice(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.spliced {
		return ErrAlreadySpliced
	}
	r.spliced = true
	r.dst = w
	if r.buf.Len() > 0 {
		if _, err := w.Write(r.buf.Bytes()); err != nil {
			return err
		}
		r.buf.Reset()
	}
	if r.closed {
		return r.closeDst()
	}
	return nil
}

func (r *RequestHalf) write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, ErrClosed
	}
	if !r.spliced {
		return r.buf.Write(p)
	}
	return r.dst.Write(p)
}

func (r *RequestHalf) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.spliced {
		return r.closeDst()
	}
	return nil
}

func (r *RequestHalf) closeDst() error {
	if c, ok := r.dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ResponseHalf is the incoming half of an interim handle. Until it is
// spliced, reads on the handle block. It also implements io.Writer so a
// producer can push response bytes directly instead of splicing a
// reader; pushed bytes never block on a slow (or absent) handle reader.
type ResponseHalf struct {
	mu      sync.Mutex
	spliced bool
	rd      *readBuffer
}

// Splice starts pumping src into the handle's read side until EOF or
// error. A second call returns ErrAlreadySpliced.
func (o *ResponseHalf) Splice(src io.Reader) error {
	o.mu.Lock()
	if o.spliced {
		o.mu.Unlock()
		return ErrAlreadySpliced
	}
	o.spliced = true
	o.mu.Unlock()
	go func() {
		_, err := io.Copy(o.rd, src)
		o.rd.closeWith(err)
	}()
	return nil
}

// Write pushes response bytes to the handle's read side.
func (o *ResponseHalf) Write(p []byte) (int, error) { return o.rd.Write(p) }

// Close marks the response as complete; pending and future reads drain
// remaining bytes and then return io.EOF.
func (o *ResponseHalf) Close() error {
	o.rd.closeWith(nil)
	return nil
}

// Fail tears down the read side: once drained, reads return err. Used by
// filters whose asynchronous setup failed before a real stream existed.
func (o *ResponseHalf) Fail(err error) {
	o.rd.closeWith(err)
}

// readBuffer is an unbounded write-never-blocks buffer with blocking
// reads. It decouples the response producer from the handle's consumer,
// which may read late or not at all.
type readBuffer struct {
	mu     sync.Mutex
	cond   *sync.Cond
	buf    bytes.Buffer
	closed bool
	err    error
}

func newReadBuffer() *readBuffer {
	b := &readBuffer{}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *readBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0, ErrClosed
	}
	n, err := b.buf.Write(p)
	b.cond.Broadcast()
	return n, err
}

func (b *readBuffer) Read(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for b.buf.Len() == 0 && !b.closed {
		b.cond.Wait()
	}
	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}

func (b *readBuffer) closeWith(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if err == nil {
		err = io.EOF
	}
	b.err = err
	b.cond.Broadcast()
}
