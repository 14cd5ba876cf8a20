// Package urid implements URI to integer token mapping.
//
// Plugins compare URIs constantly on the audio thread; mapping each URI to a
// small integer once at instantiation keeps those comparisons allocation-free.
// The package provides the Map capability interface consumed by plugins and a
// Registry implementation for hosts.
package urid
