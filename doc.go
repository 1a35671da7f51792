// Package kp finds the processes bound to a TCP port and signals them.
//
// # Quick Start
//
// Parse the port, resolve a signal, discover the owners, then dispatch:
//
//	port, err := kp.ParsePort("8080")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sig, err := kp.ResolveSignal("", false) // SIGTERM
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pids, err := kp.NewFinder().Find(ctx, port)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := kp.Dispatch(kp.DefaultSender(), pids.Sorted(), sig)
//	if !report.OK() {
//	    // inspect report.Failures
//	}
//
// # Discovery
//
// There is no portable API that maps a port to its owning process, so
// discovery runs a chain of OS tools and scrapes their text output:
//
//   - Unix: lsof (listen sockets first, then any socket), fuser, ss, netstat
//   - Windows: PowerShell Get-NetTCPConnection, netstat
//
// Both chains end with NativeProbe, which reads the socket table in-process
// and needs no external tool.
//
// A tool that is missing, fails, or times out is skipped. The chain stops at
// the first probe that reports at least one PID. Use WithRunner to replace
// process execution (tests inject canned output this way) and WithSkip to
// leave tools out.
//
// # Signaling
//
// Dispatch treats a process that exited before the signal arrived as a
// success. Permission errors are reported with ReasonPermissionDenied; any
// other error keeps its own message. On Windows every signal terminates the
// process.
package kp
