package input

import (
	"context"
	"errors"
	"io"
	"time"
	"unicode/utf8"

	"github.com/zjrosen/rowedit/internal/log"
)

const esc = 0x1B

// controls maps single control bytes to commands.
var controls = map[byte]Kind{
	0x7F: Backspace,
	0x03: Copy,
	0x16: Paste,
	0x18: Cut,
	0x11: Quit,
	0x0C: Refresh,
	0x13: Save,
	0x0F: Open,
	0x17: BackspaceWord,
	0x08: BackspaceWord,
	0x15: BackspaceLine,
	0x01: GoHome,
	0x05: GoEnd,
}

// csiFinal maps the byte after "ESC [" to a command.
var csiFinal = map[byte]Kind{
	'A': MoveUp,
	'B': MoveDown,
	'C': MoveRight,
	'D': MoveLeft,
	'H': GoHome,
	'F': GoEnd,
}

// csiTilde maps the digit in "ESC [ n ~" to a command.
var csiTilde = map[byte]Kind{
	'3': Backspace,
	'5': PageUp,
	'6': PageDown,
}

// ss3Final maps the byte after "ESC O".
var ss3Final = map[byte]Kind{
	'H': GoHome,
	'F': GoEnd,
}

// wordFinal maps the byte after "ESC 5".
var wordFinal = map[byte]Kind{
	'D': MoveLeftWord,
	'C': MoveRightWord,
}

// Decoder turns a byte stream into commands. The reader may return zero
// bytes when no input is pending; the decoder never fails.
type Decoder struct {
	r       io.Reader
	buf     [1]byte
	pending []byte
	idle    func()
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithIdle sets the function called between empty reads while the rest of
// a multi-byte sequence is awaited.
func WithIdle(f func()) Option {
	return func(d *Decoder) {
		d.idle = f
	}
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	d := &Decoder{
		r:    r,
		idle: func() { time.Sleep(time.Millisecond) },
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Next decodes one command. It returns Ignore when no input is pending.
// While awaiting the remainder of a sequence it retries empty reads until
// a byte arrives or ctx is done, in which case it returns Ignore.
func (d *Decoder) Next(ctx context.Context) Command {
	b, ok := d.read()
	if !ok {
		return Of(Ignore)
	}

	switch {
	case b == esc:
		return d.escape(ctx)
	case b == '\r':
		return CharOf('\n')
	case b >= 0xC0:
		return d.multibyte(ctx, b)
	}
	if k, ok := controls[b]; ok {
		return Of(k)
	}
	return CharOf(rune(b))
}

func (d *Decoder) escape(ctx context.Context) Command {
	intro, ok := d.await(ctx)
	if !ok {
		return Of(Ignore)
	}
	b, ok := d.await(ctx)
	if !ok {
		return Of(Ignore)
	}

	var table map[byte]Kind
	switch intro {
	case '[':
		if b >= '0' && b <= '9' {
			return d.tilde(ctx, b)
		}
		table = csiFinal
	case 'O':
		table = ss3Final
	case '5':
		table = wordFinal
	}
	if k, ok := table[b]; ok {
		return Of(k)
	}
	log.Debug(log.CatInput, "ignoring sequence", "intro", string(rune(intro)), "byte", b)
	return Of(Ignore)
}

// tilde finishes an "ESC [ digit" sequence.
func (d *Decoder) tilde(ctx context.Context, digit byte) Command {
	b, ok := d.await(ctx)
	if !ok {
		return Of(Ignore)
	}
	if b == '~' {
		if k, ok := csiTilde[digit]; ok {
			return Of(k)
		}
		log.Debug(log.CatInput, "ignoring sequence", "seq", "CSI "+string(rune(digit))+"~")
		return Of(Ignore)
	}

	// Longer sequences such as "ESC [ 1 ; 5 C" are consumed up to their
	// final byte so their tail is not typed as text.
	for b < 0x40 || b > 0x7E {
		if b, ok = d.read(); !ok {
			break
		}
	}
	log.Debug(log.CatInput, "ignoring sequence", "seq", "CSI "+string(rune(digit)), "final", b)
	return Of(Ignore)
}

// multibyte assembles a UTF-8 encoded character starting with lead. Bytes
// that do not form a valid encoding are delivered one character each.
func (d *Decoder) multibyte(ctx context.Context, lead byte) Command {
	var need int
	switch {
	case lead < 0xE0:
		need = 1
	case lead < 0xF0:
		need = 2
	case lead < 0xF8:
		need = 3
	default:
		return CharOf(rune(lead))
	}

	seq := []byte{lead}
	for range need {
		b, ok := d.await(ctx)
		if !ok {
			break
		}
		if !utf8.RuneStart(b) {
			seq = append(seq, b)
			continue
		}
		d.unread(b)
		break
	}

	r, size := utf8.DecodeRune(seq)
	if (r == utf8.RuneError && size == 1) || size != len(seq) {
		d.unread(seq[1:]...)
		return CharOf(rune(lead))
	}
	return CharOf(r)
}

// read returns one byte if one is available without waiting.
func (d *Decoder) read() (byte, bool) {
	if len(d.pending) > 0 {
		b := d.pending[0]
		d.pending = d.pending[1:]
		return b, true
	}

	n, err := d.r.Read(d.buf[:])
	if err != nil && !errors.Is(err, io.EOF) {
		log.Debug(log.CatInput, "read failed", "error", err)
	}
	if n == 0 {
		return 0, false
	}
	return d.buf[0], true
}

// await retries read until a byte arrives or ctx is done.
func (d *Decoder) await(ctx context.Context) (byte, bool) {
	for {
		if b, ok := d.read(); ok {
			return b, true
		}
		if ctx.Err() != nil {
			return 0, false
		}
		d.idle()
	}
}

func (d *Decoder) unread(bs ...byte) {
	d.pending = append(append([]byte{}, bs...), d.pending...)
}
