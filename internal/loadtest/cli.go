package loadtest

import "os"

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`passnet load test
=================

Submits synthetic pass sets to a running passnet service and checks every
returned network for consistency.

Usage:
  go run ./cmd/loadtest [options]

Options:
  -url string         Base URL of the service (default "http://localhost:9080")
  -requests int       Number of pass sets to submit (default 200)
  -passes int         Passes per pass set (default 600)
  -squad int          Distinct players per pass set (default 14)
  -workers int        Concurrent requests (default CPU cores)
  -timeout duration   HTTP request timeout (default 30s)
  -scale float        Distance scale the service uses (default 10000)
  -seed uint          Generator seed (default 1)
  -output string      Write the generated pass sets to this JSON file
  -help               Show this help message
`)
}
