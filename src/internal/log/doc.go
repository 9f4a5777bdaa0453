// Package log provides simple leveled logging for iptables-stats.
//
// Messages are written with a colored level prefix: DEBUG (only in verbose
// mode), INFO and WARN go to stdout, ERROR goes to stderr. The comparison
// report is rendered through this package, so the log is the tool's primary
// output.
//
// # Example Usage
//
//	log.Infof("Getting iptables stats (%s)...", started.Format("2006-01-02_15:04"))
//	log.Warnf("No pairs:")
//
// Enabling verbose mode and wall-clock timestamps:
//
//	log.SetVerbose(true)
//	log.SetTimestamps(true)
//
// Output control:
//
//	log.SetForceStdErr(true) // keep stdout free for a JSON report
//
// All functions are safe for concurrent use.
package log
