// Package atom models the typed control events exchanged between host and
// plugin: plain atoms, structured objects, timestamped event sequences, and a
// forge for building them against a resolved vocabulary.
package atom
