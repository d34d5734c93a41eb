package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/boxify/internal/box"
	"github.com/Faultbox/boxify/internal/engine/scene"
	"github.com/Faultbox/boxify/internal/logger"
	"github.com/Faultbox/boxify/internal/sim"
	"github.com/Faultbox/boxify/pkg/math"
)

var (
	replayDump bool
	replayFace string
)

var replayCmd = &cobra.Command{
	Use:   "replay [scenario.yaml]",
	Short: "Replay a gesture script against a simulated world",
	Long: `Replay loads a scenario (camera, detected planes, feature points and a
list of pan, rotate and double_tap gestures), feeds every gesture to the
interaction controller and prints the resulting box.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayDump, "dump", false, "Print every step and scene node as YAML")
	replayCmd.Flags().StringVar(&replayFace, "face", "", "Also print one face (front, back, top, bottom, left, right)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	var face *box.Side
	if replayFace != "" {
		side, err := box.ParseSide(replayFace)
		if err != nil {
			return err
		}
		face = &side
	}

	sc, err := sim.LoadScenario(args[0])
	if err != nil {
		return err
	}

	opts, err := sessionOptions()
	if err != nil {
		return err
	}

	session := sim.NewSession(sc, opts)
	res, err := session.Run()
	if err != nil {
		logger.Error("replay failed", zap.String("scenario", args[0]), zap.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	if replayDump {
		return dump(out, res, session.Controller().Box())
	}
	printSummary(out, res)
	if face != nil {
		printFace(out, *face, res.Frame.Faces()[*face])
	}
	return nil
}

func sessionOptions() (sim.SessionOptions, error) {
	opts := sim.DefaultSessionOptions()

	boxOpts, err := cfg.BoxOptions()
	if err != nil {
		return opts, err
	}
	palette, err := cfg.Palette()
	if err != nil {
		return opts, err
	}

	opts.Box = boxOpts
	opts.Interaction = cfg.InteractionOptions()
	opts.HitTest = cfg.HitTest
	opts.Palette = palette
	return opts, nil
}

func printSummary(w io.Writer, res sim.Result) {
	name := res.Scenario
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "Scenario: %s\n", name)
	fmt.Fprintf(w, "Events:   %d\n", len(res.Steps))
	fmt.Fprintf(w, "State:    %s\n", res.State)
	fmt.Fprintf(w, "Size:     %.1f x %.1f x %.1f cm (w x h x l)\n",
		res.Size.X*100, res.Size.Y*100, res.Size.Z*100)

	for _, l := range res.Labels {
		text := l.Text
		if l.Hidden {
			text += " (hidden)"
		}
		fmt.Fprintf(w, "  %-7s %s\n", l.Kind+":", text)
	}
}

func printFace(w io.Writer, side box.Side, n scene.Drawable) {
	fmt.Fprintf(w, "Face %s: %.1f x %.1f cm at %s, colour %s\n",
		side, n.Size.X*100, n.Size.Y*100, n.Transform.Translation(), hexColor(n))
}

type dumpNode struct {
	Kind     string    `yaml:"kind"`
	Name     string    `yaml:"name"`
	Position math.Vec3 `yaml:"position"`
	Size     math.Vec3 `yaml:"size"`
	Text     string    `yaml:"text,omitempty"`
	Color    string    `yaml:"color"`
}

func dump(w io.Writer, res sim.Result, b *box.Box) error {
	doc := struct {
		sim.Result `yaml:",inline"`
		Nodes      []dumpNode   `yaml:"nodes"`
		Wireframe  [][6]float32 `yaml:"wireframe,flow"`
	}{Result: res}

	for _, n := range res.Frame.Visible() {
		doc.Nodes = append(doc.Nodes, dumpNode{
			Kind:     n.Kind.String(),
			Name:     n.Name,
			Position: n.Transform.Translation(),
			Size:     n.Size,
			Text:     n.Text,
			Color:    hexColor(n),
		})
	}

	lines := scene.WireframeVertices(b)
	for i := 0; i+6 <= len(lines); i += 6 {
		doc.Wireframe = append(doc.Wireframe, [6]float32(lines[i:i+6]))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return enc.Close()
}

func hexColor(n scene.Drawable) string {
	c := n.Color
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
