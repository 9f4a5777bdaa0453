// Package capture takes the counter table listings that are compared.
//
// A Source returns the raw text of one listing: CommandSource runs
// `iptables -L -v -n`, IPTablesSource reads the same data through
// go-iptables and FileSource reads a listing saved earlier. Sampler takes
// two listings of one source with a wait in between.
package capture
