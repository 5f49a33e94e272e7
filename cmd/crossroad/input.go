package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/anggasct/crossroad"
)

type prompt struct {
	field  string
	text   string
	target *int
}

func prompts(config *crossroad.Config) []prompt {
	return []prompt{
		{"vehicles", "Enter the total number of vehicles (int): ", &config.Vehicles},
		{"max_arrival_gap", "Enter vehicles arrival rate (int): ", &config.MaxArrivalGap},
		{"intersection_gap", "Enter minimum interval between two consecutive vehicles (int): ", &config.IntersectionGap},
		{"green.trunk_forward", "Enter green time for forward-moving vehicles on trunk road (int): ", &config.Green.TrunkForward},
		{"green.minor_forward", "Enter green time for vehicles on minor road (int): ", &config.Green.MinorForward},
		{"green.trunk_right", "Enter green time for right-turning vehicles on trunk road (int): ", &config.Green.TrunkRight},
	}
}

// readConfig asks for every interval on out and reads the answers from in
func readConfig(in io.Reader, out io.Writer, config *crossroad.Config) error {

	var scanner = bufio.NewScanner(in)

	scanner.Split(bufio.ScanWords)

	for _, p := range prompts(config) {
		fmt.Fprint(out, p.text)

		if !scanner.Scan() {
			var err = scanner.Err()

			if err == nil {
				err = io.ErrUnexpectedEOF
			}

			return crossroad.NewInputError(p.field, "", err)
		}

		value, err := strconv.Atoi(scanner.Text())

		if err != nil {
			return crossroad.NewInputError(p.field, scanner.Text(), err)
		}

		*p.target = value
	}

	return nil
}

// loadConfig builds the run configuration from the config file, or from
// stdin when no file is given, and applies the command line overrides
func loadConfig(file, unit string, seed int, in io.Reader, out io.Writer) (*crossroad.Config, error) {

	var config = crossroad.DefaultConfig()

	if file != "" {
		var err error

		if config, err = crossroad.ReadConfig(file); err != nil {
			return nil, err
		}
	} else if err := readConfig(in, out, config); err != nil {
		return nil, err
	}

	if unit != "" {
		value, err := time.ParseDuration(unit)

		if err != nil {
			return nil, crossroad.NewInputError("unit", unit, err)
		}

		config.TimeUnit = crossroad.Duration(value)
	}

	if seed >= 0 {
		var value = uint64(seed)
		config.Seed = &value
	}

	return config, config.Validate()
}
