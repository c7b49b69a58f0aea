// Package sexpdata holds the S-expression data model and its canonical
// text encoder: symbols, strings, numeric atoms, lists (including dotted
// lists and alternate bracket pairs) and quoting forms.
//
// The lexer and parser subpackages turn text into values; Encode and Dump
// turn values back into text. Encoding then parsing any value yields an
// equal value.
package sexpdata
