//go:build windows

package kp

// DefaultProbes returns the discovery chain for Windows:
// PowerShell Get-NetTCPConnection, netstat, then the native socket table.
func DefaultProbes() []Probe {
	return []Probe{
		{
			Tool: "powershell",
			Args: func(p Port) []string {
				return []string{
					"-NoProfile", "-Command",
					"Get-NetTCPConnection -LocalPort " + p.String() +
						" -ErrorAction SilentlyContinue | Select-Object -ExpandProperty OwningProcess",
				}
			},
			Parse: func(out Output, _ Port) []int { return parseTokens(out.Stdout, "") },
		},
		{
			Tool:  "netstat",
			Args:  func(Port) []string { return []string{"-ano", "-p", "tcp"} },
			Parse: func(out Output, p Port) []int { return parseNetstat(out.Stdout, p, netstatWindows) },
		},
		NativeProbe(),
	}
}
