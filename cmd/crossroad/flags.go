package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

func init() {
	flag.Bool("debug", false, "debug mode, also logs hand-offs and the run summary")
	flag.String("config", "", "json config file, when empty the values are read from stdin")
	flag.String("unit", "", "length of one time unit, e.g. 1s or 250ms (overrides the config)")
	flag.Int("seed", -1, "seed for the random source, a negative value seeds from the clock")
	flag.String("dot", "", "write the controller ring as graphviz dot to this file and exit")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "\n Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\n Config:\n")

		var tab = tabwriter.NewWriter(flag.CommandLine.Output(), 0, 2, 2, ' ', 0)

		fmt.Fprintln(tab, "  vehicles\tint\ttotal number of vehicles")
		fmt.Fprintln(tab, "  max_arrival_gap\tint\tupper bound of the spawn delay, in time units")
		fmt.Fprintln(tab, "  intersection_gap\tint\ttime a vehicle occupies its lane while crossing")
		fmt.Fprintln(tab, "  green\tobject\ttrunk_forward, minor_forward and trunk_right green intervals")
		fmt.Fprintln(tab, "  all_red\tint\tpause between two green phases (default 2)")
		fmt.Fprintln(tab, "  time_unit\tstring\tlength of one time unit (default 1s)")
		fmt.Fprintln(tab, "  seed\tint\tseed for the random source")

		tab.Flush()
	}

}

func inputOption[T bool | string | int](name string, empty T) T {

	var input = flag.Lookup(name)

	if input == nil {
		return empty
	}

	if getter, x := input.Value.(flag.Getter); x {
		if ret, y := getter.Get().(T); y {
			return ret
		}
	}

	return empty
}
