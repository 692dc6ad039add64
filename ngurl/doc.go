/*
Package ngurl converts between neuroglancer viewer URLs and viewer state records.

A viewer URL is a prefix followed by the text of a nested record in which every comma
has been replaced by an underscore and all whitespace removed:

	https://neuroglancer-demo.appspot.com/#!{'layers':{'image':{'type':'image'_'source':...

Decode parses the record text with a small recursive-descent parser that accepts maps
with string keys, lists, quoted strings, numbers, booleans and null.  Encode writes a
record back in the same form.  Records are *Map values whose keys keep their insertion
order; the helpers With and SetPath update nested values.
*/
package ngurl
