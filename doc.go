/*
Package css holds the ambient state that CSS value parsing depends on but
never computes itself. This is meant to be a low-level library shared by
value grammars such as colors, lengths, and selectors.


Basics

A style sheet is parsed with a fixed set of ambient facts: where it came
from (its Origin), which compatibility mode the document is in (its
QuirksMode), which leniency flags apply (its ParsingMode), where relative
URLs resolve to (its URLData), and, once @namespace rules have been read,
which namespace prefixes are in scope (its Namespaces). The kind of rule
currently being parsed is a RuleType.

These are bundled into a parser.Context which is passed to every value
parser. The scanner package breaks CSS text into tokens, the parser package
provides a rewindable cursor over those tokens along with the parsing
capability that value types implement, and the values package holds a few
basic value types.


Error reporting

Parse failures are returned as errors. Callers that want to record them
pass a parser.ErrorContext holding an ErrorReporter. Reported positions are
shifted by the context's line offset so that CSS embedded in another
document, such as a style attribute, reports lines relative to that
document. The reporter package holds several implementations.


*/
package css
