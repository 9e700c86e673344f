/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across boundaries and service-agnostic
	For service dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

var (
	IsDevelopment bool
	ServiceName   string
	Addr          string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", "api_server", "name of the service, attached to every log line")
	flag.StringVar(&Addr, "addr", ":8080", "address the HTTP server listens on")
}

// ParseFlags must be called from main after all packages had the chance
// to register their flags.
func ParseFlags() {
	flag.Parse()
}
