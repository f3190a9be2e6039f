// hk32mon tails the demo firmware's UART telemetry, timestamping each
// line it receives.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"hk32hal/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = 0 // block until the board talks

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Listening on %s at %d baud\n", *device, *baud)

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		fmt.Printf("%s  %s\n", time.Now().Format("15:04:05.000"), scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: read: %v\n", err)
		os.Exit(1)
	}
}
