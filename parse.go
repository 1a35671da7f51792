package kp

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// fuserAccessCodes are the per-PID access letters fuser may append.
const fuserAccessCodes = "cefFrm"

// ssPIDPattern matches the pid=N entries of ss's users:((...)) column.
var ssPIDPattern = regexp.MustCompile(`pid=(\d+)`)

// parseTokens returns every whitespace-separated token that is a whole
// base-10 integer once the characters in trimSuffix are stripped from its end.
// lsof -t and PowerShell print one PID per line; fuser appends access codes
// such as "c" or "e" and prints a "8080/tcp:" header that must not count.
func parseTokens(data []byte, trimSuffix string) []int {
	var pids []int
	for _, tok := range strings.Fields(string(data)) {
		if trimSuffix != "" {
			tok = strings.TrimRight(tok, trimSuffix)
		}
		if !isDigits(tok) {
			continue
		}
		if pid, err := strconv.Atoi(tok); err == nil && pid > 0 {
			pids = append(pids, pid)
		}
	}
	return pids
}

// hasPort reports whether addr ends with sep followed by the port number,
// e.g. "0.0.0.0:8080" or "[::]:8080" with ":" and "*.8080" with ".".
func hasPort(addr string, sep string, port Port) bool {
	return strings.HasSuffix(addr, sep+port.String())
}

// eachLine calls fn with the fields of every non-empty line of data.
func eachLine(data []byte, fn func(line string, fields []string)) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		fn(line, fields)
	}
}

// parseSS extracts PIDs from `ss -tanp` output for sockets whose local
// address uses port. Columns: State Recv-Q Send-Q Local Peer Process.
func parseSS(data []byte, port Port) []int {
	var pids []int
	eachLine(data, func(line string, fields []string) {
		if len(fields) < 5 || !hasPort(fields[3], ":", port) {
			return
		}
		for _, m := range ssPIDPattern.FindAllStringSubmatch(line, -1) {
			if pid, err := strconv.Atoi(m[1]); err == nil && pid > 0 {
				pids = append(pids, pid)
			}
		}
	})
	return pids
}

// netstatLayout describes where one netstat dialect puts the local address
// and how its PID column is spelled.
type netstatLayout struct {
	proto      string // required prefix of the Proto column
	localField int
	sep        string
	pid        func(fields []string) (int, bool)
}

// Known netstat dialects.
var (
	// netstat -antp / -anp on Linux: Proto Recv-Q Send-Q Local Foreign State PID/Program.
	// -anp also lists udp and unix sockets.
	netstatLinux = netstatLayout{proto: "tcp", localField: 3, sep: ":", pid: linuxPID}
	// netstat -ano -p tcp on Windows: Proto Local Foreign State PID
	netstatWindows = netstatLayout{proto: "TCP", localField: 1, sep: ":", pid: lastFieldPID}
	// netstat -anv -p tcp on macOS: ... Local Foreign State rhiwat shiwat pid ...
	netstatDarwin = netstatLayout{proto: "tcp", localField: 3, sep: ".", pid: darwinPID}
)

// parseNetstat extracts PIDs for TCP sockets bound locally to port.
func parseNetstat(data []byte, port Port, layout netstatLayout) []int {
	var pids []int
	eachLine(data, func(_ string, fields []string) {
		if !strings.HasPrefix(fields[0], layout.proto) {
			return
		}
		if len(fields) <= layout.localField || !hasPort(fields[layout.localField], layout.sep, port) {
			return
		}
		if pid, ok := layout.pid(fields); ok {
			pids = append(pids, pid)
		}
	})
	return pids
}

// lastFieldPID reads a bare PID from the last column.
func lastFieldPID(fields []string) (int, bool) {
	return positiveInt(fields[len(fields)-1])
}

// linuxPID reads "1234/node" from the first column after the foreign address
// that holds a slash. Program names may contain spaces ("4242/Web Content").
// Linux prints "-" when the owner is hidden from the caller.
func linuxPID(fields []string) (int, bool) {
	if len(fields) < 6 {
		return 0, false
	}
	for _, f := range fields[5:] {
		if i := strings.IndexByte(f, '/'); i > 0 {
			return positiveInt(f[:i])
		}
	}
	return 0, false
}

// darwinPID reads the pid column of `netstat -anv`. Recent releases print
// "process:pid"; older ones print a bare number in column 9.
func darwinPID(fields []string) (int, bool) {
	for _, f := range fields[4:] {
		i := strings.LastIndexByte(f, ':')
		if i <= 0 {
			continue
		}
		if pid, ok := positiveInt(f[i+1:]); ok {
			return pid, true
		}
	}
	if len(fields) > 8 {
		return positiveInt(fields[8])
	}
	return 0, false
}

// positiveInt parses s as a whole positive base-10 integer.
func positiveInt(s string) (int, bool) {
	if !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
