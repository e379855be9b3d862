package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"pedal-librarian/midi"
)

func main() {
	defer gomidi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "identify":
		identify(os.Args[2:])
	case "monitor":
		monitor(os.Args[2:])
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI diagnostics")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List all MIDI ports")
	fmt.Println("  identify <port> - Send a device inquiry and print the reply")
	fmt.Println("  monitor <port>  - Print raw control changes from a port")
	fmt.Println("  poll            - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs := midi.PortNames()
	if ins == nil && outs == nil {
		fmt.Println("Scan timed out. The MIDI backend may be hung; try restarting it.")
		return
	}
	for i, name := range ins {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range outs {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func identify(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: midiscan identify <port>")
		return
	}
	port := strings.Join(args, " ")

	t := midi.NewTransport()
	id, err := t.RequestIdentity(port, 2*time.Second)
	if err != nil {
		fmt.Printf("Inquiry failed: %v\n", err)
		return
	}
	if id == nil {
		fmt.Println("No reply. The device may not answer identity requests.")
		return
	}
	fmt.Println(id.String())
	if id.IsInterface() {
		fmt.Println("(the reply came from a MIDI interface, not the device behind it)")
	}
}

func monitor(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: midiscan monitor <port>")
		return
	}
	port := strings.Join(args, " ")

	ins := gomidi.GetInPorts()
	var in drivers.In
	for _, p := range ins {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(port)) {
			in = p
			break
		}
	}
	if in == nil {
		fmt.Printf("No input port matching %q\n", port)
		return
	}

	fmt.Printf("Monitoring %s. Ctrl+C to exit.\n", in.String())
	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, cc, val uint8
		if msg.GetControlChange(&ch, &cc, &val) {
			fmt.Printf("[%s] ch %2d  cc %3d  val %3d\n",
				time.Now().Format("15:04:05.000"), ch+1, cc, val)
		}
	})
	if err != nil {
		fmt.Printf("Listen failed: %v\n", err)
		return
	}
	defer stop()

	select {}
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ins, outs := midi.PortNames()

		currentIn := strings.Join(ins, ",")
		currentOut := strings.Join(outs, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", ins)
			fmt.Printf("  Outputs: %v\n", outs)

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
