package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benbjohnson/cssparse/token"
)

// eof represents an EOF file byte.
var eof rune = -1

// Scanner implements a CSS3 standard compliant scanner.
//
// This implementation only allows UTF-8 encoding.
// @charset directives will be ignored.
type Scanner struct {
	// Errors contains a list of all errors that occur during scanning.
	Errors []*Error

	rd  *bufio.Reader
	pos token.Pos // position of the next code point read from rd

	buf    [8]rune      // circular buffer for runes
	bufpos [8]token.Pos // circular buffer for position
	bufi   int          // circular buffer index
	bufn   int          // number of buffered characters
}

// New returns a new instance of Scanner.
func New(r io.Reader) *Scanner {
	return &Scanner{rd: bufio.NewReader(r)}
}

// Scan returns the next token from the input.
// Once the input is exhausted it returns EOF tokens indefinitely.
func (s *Scanner) Scan() token.Token {
	for {
		ch := s.read()
		pos := s.Pos()

		switch {
		case ch == eof:
			return &token.EOF{Pos: pos}
		case isWhitespace(ch):
			return s.scanWhitespace()
		case ch == '"' || ch == '\'':
			return s.scanString()
		case ch == '#':
			return s.scanHash()
		case ch == '$':
			return s.scanMatch(pos, &token.SuffixMatch{Pos: pos})
		case ch == '*':
			return s.scanMatch(pos, &token.SubstringMatch{Pos: pos})
		case ch == '^':
			return s.scanMatch(pos, &token.PrefixMatch{Pos: pos})
		case ch == '~':
			return s.scanMatch(pos, &token.IncludeMatch{Pos: pos})
		case ch == ',':
			return &token.Comma{Pos: pos}
		case ch == '-':
			// Peek at the next two code points to decide between a number,
			// an identifier, a CDC or a plain delimiter.
			ch1, ch2 := s.read(), s.read()
			s.unread(2)

			if isDigit(ch1) || (ch1 == '.' && isDigit(ch2)) {
				s.unread(1)
				return s.scanNumeric(pos)
			} else if ch1 == '-' && ch2 == '>' {
				s.read()
				s.read()
				return &token.CDC{Pos: pos}
			} else if s.peekIdent() {
				return s.scanIdent()
			}
			return &token.Delim{Value: "-", Pos: pos}
		case ch == '/':
			// Comments are ignored by the scanner so restart the loop from
			// the end of the comment and get the next token.
			if ch1 := s.read(); ch1 == '*' {
				s.scanComment()
				continue
			}
			s.unread(1)
			return &token.Delim{Value: "/", Pos: pos}
		case ch == ':':
			return &token.Colon{Pos: pos}
		case ch == ';':
			return &token.Semicolon{Pos: pos}
		case ch == '<':
			// Attempt to read a comment open ("<!--").
			// If it's not possible then rollback and return DELIM.
			ch0, ch1, ch2 := s.read(), s.read(), s.read()
			if ch0 == '!' && ch1 == '-' && ch2 == '-' {
				return &token.CDO{Pos: pos}
			}
			s.unread(3)
			return &token.Delim{Value: "<", Pos: pos}
		case ch == '@':
			// This is an at-keyword token if an identifier follows.
			// Otherwise it's just a DELIM.
			if s.read(); s.peekIdent() {
				return &token.AtKeyword{Value: s.scanName(), Pos: pos}
			}
			s.unread(1)
			return &token.Delim{Value: "@", Pos: pos}
		case ch == '(':
			return &token.LParen{Pos: pos}
		case ch == ')':
			return &token.RParen{Pos: pos}
		case ch == '[':
			return &token.LBrack{Pos: pos}
		case ch == ']':
			return &token.RBrack{Pos: pos}
		case ch == '{':
			return &token.LBrace{Pos: pos}
		case ch == '}':
			return &token.RBrace{Pos: pos}
		case ch == '\\':
			if s.peekEscape() {
				return s.scanIdent()
			}
			// Otherwise this is a parse error but continue on as a DELIM.
			s.Errors = append(s.Errors, &Error{Message: "unescaped \\", Pos: pos})
			return &token.Delim{Value: "\\", Pos: pos}
		case ch == '+' || ch == '.':
			// Only a number if digits follow.
			ch1, ch2 := s.read(), s.read()
			s.unread(2)
			if isDigit(ch1) || (ch == '+' && ch1 == '.' && isDigit(ch2)) {
				s.unread(1)
				return s.scanNumeric(pos)
			}
			return &token.Delim{Value: string(ch), Pos: pos}
		case isDigit(ch):
			s.unread(1)
			return s.scanNumeric(pos)
		case ch == 'u' || ch == 'U':
			// Peek "+[0-9a-f]" or "+?", consume next code point, consume unicode-range.
			ch1, ch2 := s.read(), s.read()
			if ch1 == '+' && (isHexDigit(ch2) || ch2 == '?') {
				s.unread(1)
				return s.scanUnicodeRange(pos)
			}
			// Otherwise reconsume as ident.
			s.unread(2)
			return s.scanIdent()
		case isNameStart(ch):
			return s.scanIdent()
		case ch == '|':
			// If the next token is an equals sign, it's a dash token.
			// If the next token is a pipe, it's a column token.
			// Otherwise, just treat this pipe as a delim token.
			if ch1 := s.read(); ch1 == '=' {
				return &token.DashMatch{Pos: pos}
			} else if ch1 == '|' {
				return &token.Column{Pos: pos}
			}
			s.unread(1)
			return &token.Delim{Value: "|", Pos: pos}
		}
		return &token.Delim{Value: string(ch), Pos: pos}
	}
}

// scanMatch returns tok if the current code point is followed by "=".
// Otherwise it returns the current code point as a delim.
func (s *Scanner) scanMatch(pos token.Pos, tok token.Token) token.Token {
	ch := s.curr()
	if next := s.read(); next == '=' {
		return tok
	}
	s.unread(1)
	return &token.Delim{Value: string(ch), Pos: pos}
}

// scanWhitespace consumes the current code point and all subsequent whitespace.
func (s *Scanner) scanWhitespace() token.Token {
	pos := s.Pos()
	var buf bytes.Buffer
	_, _ = buf.WriteRune(s.curr())
	for {
		ch := s.read()
		if !isWhitespace(ch) {
			s.unread(1)
			break
		}
		_, _ = buf.WriteRune(ch)
	}
	return &token.Whitespace{Value: buf.String(), Pos: pos}
}

// skipWhitespace consumes whitespace following the current code point.
func (s *Scanner) skipWhitespace() {
	for {
		if ch := s.read(); !isWhitespace(ch) {
			s.unread(1)
			return
		}
	}
}

// scanString consumes a quoted string. (§4.3.4)
//
// This assumes that the current token is a single or double quote.
// This function consumes all code points and escaped code points up until
// a matching, unescaped ending quote.
// An EOF closes out a string but does not return an error.
// A newline will close a string and returns a bad-string token.
func (s *Scanner) scanString() token.Token {
	pos, ending := s.Pos(), s.curr()
	var buf bytes.Buffer
	for {
		ch := s.read()
		switch {
		case ch == eof || ch == ending:
			return &token.String{Value: buf.String(), Ending: ending, Pos: pos}
		case ch == '\n':
			s.unread(1)
			s.Errors = append(s.Errors, &Error{Message: "unterminated string", Pos: pos})
			return &token.BadString{Pos: pos}
		case ch == '\\':
			if s.peekEscape() {
				_, _ = buf.WriteRune(s.scanEscape())
				continue
			}
			// An escaped newline continues the string on the next line.
			s.read()
		default:
			_, _ = buf.WriteRune(ch)
		}
	}
}

// scanNumeric consumes a numeric token.
//
// This assumes that the next code point is a +, -, . or digit.
func (s *Scanner) scanNumeric(pos token.Pos) token.Token {
	num, typ, repr := s.scanNumber()

	// If the number is immediately followed by an identifier then scan dimension.
	if s.read(); s.peekIdent() {
		unit := s.scanName()
		return &token.Dimension{Type: typ, Value: repr + unit, Number: num, Unit: unit, Pos: pos}
	}
	s.unread(1)

	// If the number is followed by a percent sign then return a percentage.
	if ch := s.read(); ch == '%' {
		return &token.Percentage{Type: typ, Value: repr + "%", Number: num, Pos: pos}
	}
	s.unread(1)

	// Otherwise return a number token.
	return &token.Number{Type: typ, Value: repr, Number: num, Pos: pos}
}

// scanNumber consumes a number.
func (s *Scanner) scanNumber() (num float64, typ, repr string) {
	var buf bytes.Buffer
	typ = token.Integer

	// If initial code point is + or - then store it.
	if ch := s.read(); ch == '+' || ch == '-' {
		_, _ = buf.WriteRune(ch)
	} else {
		s.unread(1)
	}

	// Read as many digits as possible.
	_, _ = buf.WriteString(s.scanDigits())

	// If next code points are a full stop and digit then consume them.
	if ch0, ch1 := s.read(), s.read(); ch0 == '.' && isDigit(ch1) {
		typ = token.Float
		_, _ = buf.WriteRune(ch0)
		_, _ = buf.WriteRune(ch1)
		_, _ = buf.WriteString(s.scanDigits())
	} else {
		s.unread(2)
	}

	// Consume scientific notation (e0, e+0, e-0, E0, E+0, E-0).
	ch0, ch1, ch2 := s.read(), s.read(), s.read()
	switch {
	case (ch0 == 'e' || ch0 == 'E') && (ch1 == '+' || ch1 == '-') && isDigit(ch2):
		typ = token.Float
		_, _ = buf.WriteRune(ch0)
		_, _ = buf.WriteRune(ch1)
		_, _ = buf.WriteRune(ch2)
		_, _ = buf.WriteString(s.scanDigits())
	case (ch0 == 'e' || ch0 == 'E') && isDigit(ch1):
		typ = token.Float
		s.unread(1)
		_, _ = buf.WriteRune(ch0)
		_, _ = buf.WriteRune(ch1)
		_, _ = buf.WriteString(s.scanDigits())
	default:
		s.unread(3)
	}

	repr = buf.String()
	num, _ = strconv.ParseFloat(repr, 64)
	return
}

// scanDigits consume a contiguous series of digits.
func (s *Scanner) scanDigits() string {
	var buf bytes.Buffer
	for {
		if ch := s.read(); isDigit(ch) {
			_, _ = buf.WriteRune(ch)
		} else {
			s.unread(1)
			break
		}
	}
	return buf.String()
}

// scanComment consumes all characters up to "*/", inclusive.
// This function assumes that the initial "/*" have just been consumed.
func (s *Scanner) scanComment() {
	for {
		switch ch := s.read(); ch {
		case eof:
			return
		case '*':
			if s.read() == '/' {
				return
			}
			s.unread(1)
		}
	}
}

// scanHash consumes a hash token.
//
// This assumes the current token is a '#' code point.
// It will return a hash token if the next code points are a name or valid escape.
// It will return a delim token otherwise.
// Hash tokens' type flag is set to "id" if its value is an identifier.
func (s *Scanner) scanHash() token.Token {
	pos := s.Pos()

	if ch := s.read(); isName(ch) || s.peekEscape() {
		typ := "unrestricted"
		if s.peekIdent() {
			typ = "id"
		}
		return &token.Hash{Value: s.scanName(), Type: typ, Pos: pos}
	}
	s.unread(1)

	return &token.Delim{Value: "#", Pos: pos}
}

// scanName consumes a name starting at the current code point.
// Consumes contiguous name code points and escaped code points.
func (s *Scanner) scanName() string {
	var buf bytes.Buffer
	s.unread(1)
	for {
		if ch := s.read(); isName(ch) {
			_, _ = buf.WriteRune(ch)
		} else if s.peekEscape() {
			_, _ = buf.WriteRune(s.scanEscape())
		} else {
			s.unread(1)
			return buf.String()
		}
	}
}

// scanIdent consumes a ident-like token.
// This function can return an ident, function, url, or bad-url.
func (s *Scanner) scanIdent() token.Token {
	pos := s.Pos()
	v := s.scanName()

	if ch := s.read(); ch == '(' {
		if strings.EqualFold(v, "url") {
			return s.scanURL(pos)
		}
		return &token.Function{Value: v, Pos: pos}
	}
	s.unread(1)

	return &token.Ident{Value: v, Pos: pos}
}

// scanURL consumes the contents of a URL function.
// This function assumes that the "url(" has just been consumed.
// This function can return a url or bad-url token.
func (s *Scanner) scanURL(pos token.Pos) token.Token {
	s.skipWhitespace()

	// If the URL starts with a single or double quote then consume a string
	// and use the string's value as the URL.
	if ch := s.read(); ch == eof {
		return &token.URL{Pos: pos}
	} else if ch == '"' || ch == '\'' {
		str, ok := s.scanString().(*token.String)
		if !ok {
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		}

		s.skipWhitespace()
		if ch := s.read(); ch != ')' && ch != eof {
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		}
		return &token.URL{Value: str.Value, Pos: pos}
	}
	s.unread(1)

	// If we have a non-quote character then scan all non-whitespace, non-quote
	// and non-lparen code points to form the URL value.
	var buf bytes.Buffer
	for {
		ch := s.read()
		switch {
		case ch == ')' || ch == eof:
			return &token.URL{Value: buf.String(), Pos: pos}
		case isWhitespace(ch):
			s.skipWhitespace()
			if ch0 := s.read(); ch0 == ')' || ch0 == eof {
				return &token.URL{Value: buf.String(), Pos: pos}
			}
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		case ch == '"' || ch == '\'' || ch == '(' || isNonPrintable(ch):
			s.Errors = append(s.Errors, &Error{Message: fmt.Sprintf("invalid url code point: %c (%U)", ch, ch), Pos: pos})
			s.scanBadURL()
			return &token.BadURL{Pos: pos}
		case ch == '\\':
			if !s.peekEscape() {
				s.Errors = append(s.Errors, &Error{Message: "unescaped \\ in url", Pos: s.Pos()})
				s.scanBadURL()
				return &token.BadURL{Pos: pos}
			}
			_, _ = buf.WriteRune(s.scanEscape())
		default:
			_, _ = buf.WriteRune(ch)
		}
	}
}

// scanBadURL recovers the scanner from a malformed URL token.
// We simply consume all non-) and non-eof characters and escaped code points.
func (s *Scanner) scanBadURL() {
	for {
		ch := s.read()
		if ch == ')' || ch == eof {
			return
		} else if s.peekEscape() {
			s.scanEscape()
		}
	}
}

// scanUnicodeRange consumes a unicode-range token.
// This assumes the "U+" has been consumed.
func (s *Scanner) scanUnicodeRange(pos token.Pos) token.Token {
	var buf bytes.Buffer

	// Consume up to 6 hex digits first.
	_, _ = buf.WriteString(s.scanHexDigits(6))

	// Consume question marks to total 6 characters (hex digits + question marks).
	n := buf.Len()
	for i := 0; i < 6-n; i++ {
		if ch := s.read(); ch == '?' {
			_, _ = buf.WriteRune(ch)
		} else {
			s.unread(1)
			break
		}
	}

	// If we have any question marks then calculate the range.
	// To calculate the range, we replace "?" with "0" for the start and
	// we replace "?" with "F" for the end.
	if buf.Len() > n {
		start, _ := strconv.ParseInt(strings.Replace(buf.String(), "?", "0", -1), 16, 0)
		end, _ := strconv.ParseInt(strings.Replace(buf.String(), "?", "F", -1), 16, 0)
		return &token.UnicodeRange{Start: int(start), End: int(end), Pos: pos}
	}

	start, _ := strconv.ParseInt(buf.String(), 16, 0)

	// If the next two code points are a "-" and a hex digit then consume the end.
	if ch1, ch2 := s.read(), s.read(); ch1 == '-' && isHexDigit(ch2) {
		s.unread(1)
		end, _ := strconv.ParseInt(s.scanHexDigits(6), 16, 0)
		return &token.UnicodeRange{Start: int(start), End: int(end), Pos: pos}
	}
	s.unread(2)

	// Otherwise set the end value to the start value.
	return &token.UnicodeRange{Start: int(start), End: int(start), Pos: pos}
}

// scanHexDigits consumes up to n hex digits.
func (s *Scanner) scanHexDigits(n int) string {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		if ch := s.read(); isHexDigit(ch) {
			_, _ = buf.WriteRune(ch)
		} else {
			s.unread(1)
			break
		}
	}
	return buf.String()
}

// scanEscape consumes an escaped code point.
// This assumes the current code point is the backslash.
func (s *Scanner) scanEscape() rune {
	ch := s.read()
	if ch == eof {
		return utf8.RuneError
	} else if !isHexDigit(ch) {
		return ch
	}

	s.unread(1)
	v, _ := strconv.ParseInt(s.scanHexDigits(6), 16, 0)

	// A single whitespace code point after a hex escape is consumed.
	if next := s.read(); !isWhitespace(next) {
		s.unread(1)
	}

	if v == 0 || (v >= 0xD800 && v <= 0xDFFF) || v > utf8.MaxRune {
		return utf8.RuneError
	}
	return rune(v)
}

// peekEscape checks if the current and next code points are a valid escape.
func (s *Scanner) peekEscape() bool {
	if s.curr() != '\\' {
		return false
	}

	// If the next code point is a newline then this is not an escape.
	next := s.read()
	s.unread(1)
	return next != '\n'
}

// peekIdent checks if the code points starting at the current one begin an identifier.
func (s *Scanner) peekIdent() bool {
	switch ch := s.curr(); {
	case ch == '-':
		next := s.read()
		if next == '-' || isNameStart(next) {
			s.unread(1)
			return true
		}
		ok := next == '\\' && s.peekEscape()
		s.unread(1)
		return ok
	case isNameStart(ch):
		return true
	case ch == '\\':
		return s.peekEscape()
	}
	return false
}

// read reads the next rune from the reader.
// This function will initially check for any characters that have been pushed
// back onto the lookahead buffer and return those. Otherwise it will read from
// the reader and do preprocessing to convert newline characters and NULL.
func (s *Scanner) read() rune {
	// If we have runes on our internal lookahead buffer then return those.
	if s.bufn > 0 {
		s.bufi = ((s.bufi + 1) % len(s.buf))
		s.bufn--
		return s.buf[s.bufi]
	}

	pos := s.pos
	ch, _, err := s.rd.ReadRune()
	if err != nil {
		ch = eof
	} else {
		// Preprocess the input stream by replacing FF with LF. (§3.3)
		if ch == '\f' {
			ch = '\n'
		}

		// Preprocess the input stream by replacing CR and CRLF with LF. (§3.3)
		if ch == '\r' {
			if next, _, err := s.rd.ReadRune(); err == nil && next != '\n' {
				_ = s.rd.UnreadRune()
			}
			ch = '\n'
		}

		// Replace NULL with Unicode replacement character. (§3.3)
		if ch == '\000' {
			ch = utf8.RuneError
		}

		// Track scanner position.
		if ch == '\n' {
			s.pos.Line++
			s.pos.Char = 0
		} else {
			s.pos.Char++
		}
	}

	// Add to circular buffer.
	s.bufi = ((s.bufi + 1) % len(s.buf))
	s.buf[s.bufi] = ch
	s.bufpos[s.bufi] = pos
	return ch
}

// unread adds the previous n code points back onto the buffer.
func (s *Scanner) unread(n int) {
	for i := 0; i < n; i++ {
		s.bufi = ((s.bufi + len(s.buf) - 1) % len(s.buf))
		s.bufn++
	}
}

// curr reads the current code point.
func (s *Scanner) curr() rune {
	return s.buf[s.bufi]
}

// Pos returns the position of the current code point.
func (s *Scanner) Pos() token.Pos {
	return s.bufpos[s.bufi]
}

// isWhitespace returns true if the rune is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

// isLetter returns true if the rune is a letter.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9')
}

// isHexDigit returns true if the rune is a hex digit.
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isNonASCII returns true if the rune is greater than U+0080.
func isNonASCII(ch rune) bool {
	return ch >= '\u0080'
}

// isNameStart returns true if the rune can start a name.
func isNameStart(ch rune) bool {
	return isLetter(ch) || isNonASCII(ch) || ch == '_'
}

// isName returns true if the character is a name code point.
func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

// isNonPrintable returns true if the character is non-printable.
func isNonPrintable(ch rune) bool {
	return (ch >= '\u0000' && ch <= '\u0008') || ch == '\u000B' || (ch >= '\u000E' && ch <= '\u001F') || ch == '\u007F'
}

// Error represents a tokenization error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}
