// Command meshgen builds facet's models outside the viewer. It prints mesh
// statistics and exports single meshes or whole scenes as glTF.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/facet/assets"
	"github.com/chazu/facet/pkg/config"
	"github.com/chazu/facet/pkg/engine"
	"github.com/chazu/facet/pkg/models"
	"github.com/chazu/facet/pkg/render"
	"github.com/chazu/facet/pkg/render/gltfexport"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "meshgen",
		Short:         "Build, inspect and export facet meshes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (.toml or .yaml)")

	loadConfig := func() (*config.Config, error) {
		if cfgPath == "" {
			return config.Default(), nil
		}
		return config.Load(cfgPath)
	}

	root.AddCommand(newStatsCmd(out, loadConfig))
	root.AddCommand(newExportCmd(out, loadConfig))
	root.AddCommand(newSceneCmd(out, loadConfig))
	root.SetOut(out)
	return root
}

type configLoader func() (*config.Config, error)

func newStatsCmd(out io.Writer, load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [mesh...]",
		Short: "Print vertex, triangle and edge counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			lib := models.Default(cfg)
			names := args
			if len(names) == 0 {
				names = lib.Names()
			}
			fmt.Fprintf(out, "%-10s %9s %9s %9s\n", "mesh", "vertices", "triangles", "edges")
			for _, name := range names {
				mesh, err := lib.Mesh(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %9d %9d %9d\n", name, mesh.VertexCount(), mesh.TriangleCount(), mesh.EdgeCount())
			}
			return nil
		},
	}
}

func newExportCmd(out io.Writer, load configLoader) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export <mesh>",
		Short: "Write one mesh as glTF (.gltf or .glb)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			name := args[0]
			mesh, err := models.Default(cfg).Mesh(name)
			if err != nil {
				return err
			}
			path := output
			if path == "" {
				path = name + ".gltf"
			}
			if err := gltfexport.ExportMesh(path, name, mesh); err != nil {
				return fmt.Errorf("export %s: %w", name, err)
			}
			log.Printf("Wrote %s (%d triangles)", path, mesh.TriangleCount())
			fmt.Fprintln(out, path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <mesh>.gltf)")
	return cmd
}

func newSceneCmd(out io.Writer, load configLoader) *cobra.Command {
	var output, script string
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Evaluate a scene script and write the drawn frame as glTF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if script != "" {
				cfg.Scene = script
			}
			source := assets.Scene
			if cfg.Scene != "" {
				b, err := os.ReadFile(cfg.Scene)
				if err != nil {
					return err
				}
				source = string(b)
			}

			lib := models.Default(cfg)
			eng := engine.NewEngine(engine.WithMeshes(lib.Names()...))
			g, evalErrs, warnings, err := eng.EvaluateChecked(source)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				log.Printf("Warning: %s", w.Message)
			}
			if len(evalErrs) > 0 {
				for _, e := range evalErrs {
					log.Printf("Error: %s", e.Error())
				}
				return fmt.Errorf("scene has %d errors", len(evalErrs))
			}

			f, err := render.BuildFrame(cfg, g)
			if err != nil {
				return err
			}
			e, err := gltfexport.ExportFrame(output, f, lib)
			if err != nil {
				return err
			}
			log.Printf("Wrote %s (%d draws)", output, e.Draws())
			fmt.Fprintln(out, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "scene.gltf", "output path (.gltf or .glb)")
	cmd.Flags().StringVarP(&script, "script", "s", "", "scene script (default: built-in scene)")
	return cmd
}
