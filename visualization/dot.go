// Package visualization renders a simulation's controller ring as Graphviz DOT
package visualization

import (
	"fmt"
	"os"
	"strings"

	"github.com/anggasct/crossroad"
)

// DOTGenerator generates Graphviz DOT representations of a controller ring
type DOTGenerator struct {
	simulation *crossroad.Simulation
	options    DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowHeadings  bool
	ShowPhases    bool
	RankDirection string // "TB", "LR", "BT", "RL"
	NodeShape     string
	PhaseShape    string
}

// DefaultDOTOptions returns the default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowHeadings:  true,
		ShowPhases:    true,
		RankDirection: "LR",
		NodeShape:     "box",
		PhaseShape:    "ellipse",
	}
}

// NewDOTGenerator creates a new DOT generator for the given simulation
func NewDOTGenerator(simulation *crossroad.Simulation, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		simulation: simulation,
		options:    opts,
	}
}

// Generate creates a DOT representation of the ring
func (g *DOTGenerator) Generate() (string, error) {
	var dot strings.Builder

	dot.WriteString("digraph Intersection {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString("  edge [fontsize=10];\n\n")

	if err := g.generateRing(&dot); err != nil {
		return "", fmt.Errorf("failed to generate ring: %w", err)
	}

	if g.options.ShowPhases {
		g.generatePhases(&dot)
	}

	dot.WriteString("}\n")

	return dot.String(), nil
}

func (g *DOTGenerator) generateRing(dot *strings.Builder) error {
	controllers := g.simulation.Controllers()

	if len(controllers) == 0 {
		return fmt.Errorf("simulation has no controllers")
	}

	dot.WriteString("  // Controllers\n")

	for i, c := range controllers {
		label := c.Name()
		if g.options.ShowHeadings {
			names := make([]string, 0)
			for _, h := range crossroad.GroupHeadings(c.Group()) {
				names = append(names, h.String())
			}
			label = fmt.Sprintf("%s\\n%s\\n%s", c.Name(), c.Group(), strings.Join(names, " "))
		}

		fillColor := "lightblue"
		if i == 0 {
			fillColor = "lightgreen"
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [shape=%s style=\"filled\" fillcolor=%s label=\"%s\"];\n",
			c.Name(), g.options.NodeShape, fillColor, label))
	}

	dot.WriteString("\n  // Hand-offs\n")

	for i, c := range controllers {
		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\"];\n",
			c.Name(), controllers[g.simulation.Next(i)].Name(), crossroad.EventHandoff))
	}

	return nil
}

func (g *DOTGenerator) generatePhases(dot *strings.Builder) {
	dot.WriteString("\n  subgraph cluster_phases {\n")
	dot.WriteString("    label=\"controller phases\";\n")

	for _, t := range crossroad.Transitions() {
		dot.WriteString(fmt.Sprintf("    \"%s\" [shape=%s];\n", t.SourcePhase, g.options.PhaseShape))
	}

	for _, t := range crossroad.Transitions() {
		dot.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\" [label=\"%s\"];\n", t.SourcePhase, t.TargetPhase, t.EventName))
	}

	dot.WriteString("  }\n")
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}
