package kp

import (
	"context"

	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"
)

// NativeTool names the in-process probe for WithSkip and traces.
const NativeTool = "native"

// NativeProbe reads the socket table without an external tool. It closes
// every platform chain, so discovery still works on hosts with no lsof,
// fuser, ss or netstat installed.
func NativeProbe() Probe {
	return Probe{Tool: NativeTool, Native: nativeSockets}
}

func nativeSockets(ctx context.Context, port Port) ([]int, error) {
	conns, err := psnet.ConnectionsWithContext(ctx, "tcp")
	if err != nil {
		return nil, err
	}
	return connectionPIDs(conns, port), nil
}

// connectionPIDs returns the owners of sockets bound locally to port.
// Sockets of other users report PID 0 when unprivileged and are dropped.
func connectionPIDs(conns []psnet.ConnectionStat, port Port) []int {
	var pids []int
	for _, c := range conns {
		if c.Laddr.Port == uint32(port) && c.Pid > 0 { // #nosec G115 -- Port is validated to 1..65535
			pids = append(pids, int(c.Pid))
		}
	}
	return pids
}

// ProcessName returns the executable name of pid, or "" when it cannot be
// read (process gone, insufficient privileges).
func ProcessName(ctx context.Context, pid int) string {
	if pid <= 0 {
		return ""
	}
	p, err := process.NewProcessWithContext(ctx, int32(pid)) // #nosec G115 -- PIDs fit in int32 on every supported OS
	if err != nil {
		return ""
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return ""
	}
	return name
}
