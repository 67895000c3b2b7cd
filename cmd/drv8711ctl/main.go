// Command drv8711ctl drives a DRV8711 stepper driver through a
// serial-attached register bridge MCU.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"drv8711/core"
	"drv8711/host/bridge"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path of the bridge MCU")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	cfgPath = flag.String("config", "", "JSON file with initial driver settings")
)

func main() {
	flag.Parse()

	fmt.Printf("Connecting to bridge on %s...\n", *device)
	conn, err := bridge.Open(*device, *baud)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	dev := core.New(conn)

	if *cfgPath != "" {
		cfg, err := LoadConfig(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Apply(dev); err != nil {
			fmt.Fprintf(os.Stderr, "Error: apply config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Applied %s: mode=1/%d gain=%d dead_time=%dns torque=%d off_time=%d\n",
			*cfgPath, cfg.StepMode, cfg.Gain, cfg.DeadTimeNs, cfg.Torque, cfg.OffTime)
	}

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" || line == "q" {
			return
		}
		if err := run(dev, conn, strings.Fields(line)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func run(dev *core.Device, conn *bridge.Bridge, args []string) error {
	switch cmd := args[0]; cmd {
	case "help", "?":
		printHelp()
		return nil

	case "enable":
		return dev.Enable()

	case "disable":
		return dev.Disable()

	case "dir":
		return dev.FlipDirection()

	case "step":
		n := 1
		if len(args) > 1 {
			var err error
			if n, err = strconv.Atoi(args[1]); err != nil || n < 1 {
				return fmt.Errorf("usage: step [count]")
			}
		}
		for i := 0; i < n; i++ {
			if err := dev.Step(); err != nil {
				return err
			}
		}
		return nil

	case "mode", "gain", "dead", "torque", "off":
		if len(args) != 2 {
			return fmt.Errorf("usage: %s <value>", cmd)
		}
		v, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			return fmt.Errorf("usage: %s <value>", cmd)
		}
		switch cmd {
		case "mode":
			return dev.SetStepMode(uint16(v))
		case "gain":
			return dev.SetGain(uint16(v))
		case "dead":
			return dev.SetDeadTime(uint16(v))
		case "torque":
			return dev.SetTorque(uint8(v))
		default:
			return dev.SetOffTime(uint8(v))
		}

	case "pwm":
		return dev.TogglePWMMode()

	case "status":
		status, err := dev.ReadStatus()
		if err != nil {
			return err
		}
		fmt.Printf("STATUS = %#04x%s\n", status, describeStatus(status))
		return nil

	case "clear":
		return dev.ClearStatus()

	case "read", "write":
		return runRaw(conn, args)

	default:
		return fmt.Errorf("unknown command %q (type 'help' for available commands)", cmd)
	}
}

// runRaw bypasses the register model for debugging against the bare
// bus. Raw writes do not update the model's shadow registers.
func runRaw(conn *bridge.Bridge, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: %s <addr> [value]", args[0])
	}
	addr, err := strconv.ParseUint(args[1], 0, 3)
	if err != nil {
		return fmt.Errorf("register address must be 0-7")
	}

	if args[0] == "read" {
		value, err := conn.ReadRegister(uint8(addr))
		if err != nil {
			return err
		}
		fmt.Printf("reg[%d] = %#04x\n", addr, value&core.DATA_MASK)
		return nil
	}

	if len(args) != 3 {
		return fmt.Errorf("usage: write <addr> <value>")
	}
	value, err := strconv.ParseUint(args[2], 0, 12)
	if err != nil {
		return fmt.Errorf("register value must fit in 12 bits")
	}
	return conn.WriteRegister(uint8(addr), uint16(value))
}

func describeStatus(status uint16) string {
	flags := []struct {
		bit  uint16
		name string
	}{
		{core.STATUS_OTS, "overtemperature"},
		{core.STATUS_AOCP, "A overcurrent"},
		{core.STATUS_BOCP, "B overcurrent"},
		{core.STATUS_APDF, "A predriver fault"},
		{core.STATUS_BPDF, "B predriver fault"},
		{core.STATUS_UVLO, "undervoltage"},
		{core.STATUS_STD, "stall"},
		{core.STATUS_STDLAT, "latched stall"},
	}

	var set []string
	for _, f := range flags {
		if status&f.bit != 0 {
			set = append(set, f.name)
		}
	}
	if len(set) == 0 {
		return " (no faults)"
	}
	return " (" + strings.Join(set, ", ") + ")"
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  enable             - Enable the motor outputs")
	fmt.Println("  disable            - Disable the motor outputs")
	fmt.Println("  dir                - Flip the direction sense")
	fmt.Println("  step [count]       - Advance the indexer")
	fmt.Println("  mode <res>         - Set microstep resolution (1..256)")
	fmt.Println("  gain <g>           - Set sense amplifier gain (5/10/20/40)")
	fmt.Println("  dead <ns>          - Set dead time (400/450/650/850)")
	fmt.Println("  torque <0-255>     - Set torque DAC value")
	fmt.Println("  off <0-255>        - Set fixed off time")
	fmt.Println("  pwm                - Toggle PWM (xINx) mode")
	fmt.Println("  status             - Read and decode the STATUS register")
	fmt.Println("  clear              - Clear latched fault flags")
	fmt.Println("  read <addr>        - Raw register read")
	fmt.Println("  write <addr> <val> - Raw register write (bypasses shadows)")
	fmt.Println("  quit/exit/q        - Exit the program")
	fmt.Println()
}
