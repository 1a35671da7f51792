package kp

import (
	"context"
	"errors"
	"net"
	"os"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// ---------------------------------------------------------------------------
// TestConnectionPIDs - Socket table filtering
// ---------------------------------------------------------------------------

func TestConnectionPIDs(t *testing.T) {
	t.Parallel()

	conns := []psnet.ConnectionStat{
		{Laddr: psnet.Addr{IP: "0.0.0.0", Port: 8080}, Status: "LISTEN", Pid: 10},
		{Laddr: psnet.Addr{IP: "127.0.0.1", Port: 8080}, Raddr: psnet.Addr{IP: "127.0.0.1", Port: 51000}, Status: "ESTABLISHED", Pid: 11},
		{Laddr: psnet.Addr{IP: "127.0.0.1", Port: 51000}, Raddr: psnet.Addr{IP: "127.0.0.1", Port: 8080}, Status: "ESTABLISHED", Pid: 12},
		{Laddr: psnet.Addr{IP: "::", Port: 8080}, Status: "LISTEN", Pid: 0},
		{Laddr: psnet.Addr{IP: "0.0.0.0", Port: 18080}, Status: "LISTEN", Pid: 13},
	}

	if diff := cmp.Diff([]int{10, 11}, connectionPIDs(conns, 8080)); diff != "" {
		t.Errorf("connectionPIDs() mismatch (-want +got):\n%s", diff)
	}
	if got := connectionPIDs(conns, 9); len(got) != 0 {
		t.Errorf("connectionPIDs(9) = %v, want none", got)
	}
}

// ---------------------------------------------------------------------------
// TestNativeProbe - In-process probe in a chain
// ---------------------------------------------------------------------------

func TestNativeProbe_Command(t *testing.T) {
	t.Parallel()

	if got := NativeProbe().Command(8080); got != NativeTool {
		t.Errorf("Command() = %q, want %q", got, NativeTool)
	}
}

func TestFinder_NativeProbe(t *testing.T) {
	t.Parallel()

	var gotPort Port
	native := Probe{Tool: NativeTool, Native: func(_ context.Context, p Port) ([]int, error) {
		gotPort = p
		return []int{77, 0, 77}, nil
	}}

	runner := newFakeRunner(nil)
	f := NewFinder(WithRunner(runner), WithProbes([]Probe{native}))
	pids, err := f.Find(context.Background(), 3000)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if calls := runner.Calls(); len(calls) != 0 {
		t.Errorf("native probe ran external commands: %v", calls)
	}
	if diff := cmp.Diff([]int{77}, pids.Sorted()); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
	if gotPort != 3000 {
		t.Errorf("native probe got port %d, want 3000", gotPort)
	}
}

func TestFinder_NativeProbeError(t *testing.T) {
	t.Parallel()

	failing := Probe{Tool: NativeTool, Native: func(context.Context, Port) ([]int, error) {
		return nil, errors.New("permission denied")
	}}

	var traces []string
	f := NewFinder(
		WithProbes([]Probe{failing}),
		WithTracef(func(format string, args ...any) {
			traces = append(traces, format)
		}),
	)
	pids, err := f.Find(context.Background(), 3000)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if pids.Len() != 0 {
		t.Errorf("Find() = %v, want empty", pids.Sorted())
	}
	if len(traces) == 0 {
		t.Error("failing native probe left no trace")
	}
}

// ---------------------------------------------------------------------------
// TestNativeSockets - Real socket table
// ---------------------------------------------------------------------------

func TestNativeSockets_FindsOwnListener(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	port := Port(ln.Addr().(*net.TCPAddr).Port) // #nosec G115 -- ephemeral port
	pids, err := nativeSockets(context.Background(), port)
	if err != nil {
		t.Skipf("socket table unavailable: %v", err)
	}
	if !slices.Contains(pids, os.Getpid()) {
		t.Errorf("nativeSockets(%d) = %v, want to include %d", port, pids, os.Getpid())
	}
}

func TestProcessName(t *testing.T) {
	t.Parallel()

	if got := ProcessName(context.Background(), 0); got != "" {
		t.Errorf("ProcessName(0) = %q, want empty", got)
	}
	if got := ProcessName(context.Background(), os.Getpid()); got == "" {
		t.Error("ProcessName(self) is empty")
	}
}
