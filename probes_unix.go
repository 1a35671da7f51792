//go:build !windows

package kp

import "runtime"

// DefaultProbes returns the discovery chain for this platform:
// lsof (listeners, then any socket), fuser, ss (not on macOS), netstat,
// then the native socket table.
func DefaultProbes() []Probe {
	return probesFor(runtime.GOOS)
}

func probesFor(goos string) []Probe {
	probes := []Probe{
		{
			Tool:              "lsof",
			Args:              func(p Port) []string { return []string{"-nP", "-iTCP:" + p.String(), "-sTCP:LISTEN", "-t"} },
			Parse:             stdoutTokens,
			SkipToolOnMissing: true,
		},
		{
			Tool:              "lsof",
			Args:              func(p Port) []string { return []string{"-nti", "tcp:" + p.String()} },
			Parse:             stdoutTokens,
			SkipToolOnMissing: true,
		},
		{
			Tool:              "lsof",
			Args:              func(p Port) []string { return []string{"-ti", ":" + p.String()} },
			Parse:             stdoutTokens,
			SkipToolOnMissing: true,
		},
		{
			Tool:   "fuser",
			Args:   func(p Port) []string { return []string{"-n", "tcp", p.String()} },
			OKExit: []int{0, 1},
			Parse: func(out Output, _ Port) []int {
				// PIDs land on stdout or stderr depending on the implementation.
				pids := parseTokens(out.Stdout, fuserAccessCodes)
				return append(pids, parseTokens(out.Stderr, fuserAccessCodes)...)
			},
		},
	}

	if goos == "darwin" {
		return append(probes,
			Probe{
				Tool:  "netstat",
				Args:  func(Port) []string { return []string{"-anv", "-p", "tcp"} },
				Parse: func(out Output, p Port) []int { return parseNetstat(out.Stdout, p, netstatDarwin) },
			},
			NativeProbe(),
		)
	}

	return append(probes,
		Probe{
			Tool:  "ss",
			Args:  func(Port) []string { return []string{"-tanp"} },
			Parse: func(out Output, p Port) []int { return parseSS(out.Stdout, p) },
		},
		Probe{
			Tool:              "netstat",
			Args:              func(Port) []string { return []string{"-antp"} },
			Parse:             func(out Output, p Port) []int { return parseNetstat(out.Stdout, p, netstatLinux) },
			SkipToolOnMissing: true,
		},
		Probe{
			Tool:              "netstat",
			Args:              func(Port) []string { return []string{"-anp"} },
			Parse:             func(out Output, p Port) []int { return parseNetstat(out.Stdout, p, netstatLinux) },
			SkipToolOnMissing: true,
		},
		NativeProbe(),
	)
}

func stdoutTokens(out Output, _ Port) []int {
	return parseTokens(out.Stdout, "")
}
