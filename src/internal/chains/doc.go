// Package chains splits an `iptables -L -v -n` listing into chains.
//
// A listing looks like this:
//
//	Chain docker-elasticsearch (1 references)
//	 pkts bytes target     prot opt in     out     source               destination
//	    2   128 RETURN     all  --  *      *       10.66.0.0/16         0.0.0.0/0
//	    6   240 DROP       all  --  *      *       0.0.0.0/0            0.0.0.0/0
//
// Parse returns a Snapshot mapping each chain name to the non-blank lines
// that follow its header. Lines are kept verbatim and in source order; the
// column header row is kept as an ordinary line unless WithoutColumnHeader
// is passed.
package chains
