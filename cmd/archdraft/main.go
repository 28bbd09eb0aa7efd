// ArchDraft — Parametric Building-Element Geometry Engine
//
// A command-line tool that loads an ArchDraft project file, generates
// wall, stair, and roof geometry, and exports construction documents.
// User defaults live in ~/.archdraft/config.json and are applied to
// newly created projects; ~/.archdraft/templates.json holds reusable
// project templates.
//
// Build:
//   go build -o archdraft ./cmd/archdraft
//
// Usage:
//   archdraft -project house.json -out ./plans -format pdf
//   archdraft -project house.json -out ./plans -format dxf,xlsx,labels
//   archdraft -import-dxf survey.dxf -project house.json
//   archdraft -template "Two-story" -project house.json
//   archdraft -project house.json -import-openings schedule.csv -wall North
//   archdraft -backup archdraft-backup.json

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/planverk/archdraft/internal/engine"
	"github.com/planverk/archdraft/internal/export"
	"github.com/planverk/archdraft/internal/importer"
	"github.com/planverk/archdraft/internal/model"
	"github.com/planverk/archdraft/internal/project"
)

type options struct {
	projectPath    string
	outDir         string
	formats        string
	importDXF      string
	importOpenings string
	wallLabel      string
	template       string
}

func main() {
	opts := options{}
	flag.StringVar(&opts.projectPath, "project", "", "path to the project JSON file (required)")
	flag.StringVar(&opts.outDir, "out", ".", "output directory for exported documents")
	flag.StringVar(&opts.formats, "format", "pdf", "comma-separated export formats: dxf, pdf, xlsx, labels")
	flag.StringVar(&opts.importDXF, "import-dxf", "", "create the project from a DXF drawing instead of loading it")
	flag.StringVar(&opts.importOpenings, "import-openings", "", "append an opening schedule (CSV or XLSX) to a wall")
	flag.StringVar(&opts.wallLabel, "wall", "", "wall label receiving imported openings")
	flag.StringVar(&opts.template, "template", "", "create the project from a saved template of this name")
	backupPath := flag.String("backup", "", "write a backup of the config and templates to this path and exit")
	flag.Parse()

	if *backupPath != "" {
		if err := writeBackup(*backupPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if opts.projectPath == "" {
		fmt.Fprintln(os.Stderr, "error: -project is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}

	var p model.Project
	switch {
	case opts.importDXF != "":
		p, err = projectFromDXF(opts.importDXF, opts.projectPath, config)
	case opts.template != "":
		p, err = projectFromTemplate(opts.template, opts.projectPath)
	default:
		p, err = project.Load(opts.projectPath)
	}
	if err != nil {
		return err
	}

	if _, err := project.RememberProject(project.DefaultConfigPath(), opts.projectPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not update recent projects: %v\n", err)
	}

	if opts.importOpenings != "" {
		if err := addOpenings(&p, opts.importOpenings, opts.wallLabel); err != nil {
			return err
		}
		if err := project.Save(opts.projectPath, p); err != nil {
			return err
		}
		fmt.Printf("updated %s\n", opts.projectPath)
	}

	planner := engine.New(p.Settings)
	plan := planner.GeneratePlan(p)

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(opts.projectPath), filepath.Ext(opts.projectPath))
	for _, format := range strings.Split(opts.formats, ",") {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" {
			continue
		}
		var out string
		switch format {
		case "dxf":
			out = filepath.Join(opts.outDir, base+".dxf")
			err = export.ExportDXF(out, plan)
		case "pdf":
			out = filepath.Join(opts.outDir, base+".pdf")
			err = export.ExportPDF(out, p, plan)
		case "xlsx":
			out = filepath.Join(opts.outDir, base+".xlsx")
			err = export.ExportSchedule(out, p, plan)
		case "labels":
			out = filepath.Join(opts.outDir, base+"-labels.pdf")
			err = export.ExportLabels(out, p)
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		fmt.Printf("wrote %s\n", out)
	}

	printSummary(p.Name, plan)
	return nil
}

// projectFromDXF builds a new project from a DXF drawing: loose lines become
// walls, closed footprints become flat roofs to be reworked by hand, and the
// result is saved to projectPath. The user's saved defaults drive the wall
// and roof dimensions.
func projectFromDXF(dxfPath, projectPath string, config model.AppConfig) (model.Project, error) {
	result := importer.ImportDXF(dxfPath)
	if len(result.Errors) > 0 {
		return model.Project{}, fmt.Errorf("import %s: %s", dxfPath, strings.Join(result.Errors, "; "))
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	p := model.NewProject()
	p.Name = strings.TrimSuffix(filepath.Base(dxfPath), filepath.Ext(dxfPath))
	config.ApplyToSettings(&p.Settings)
	p.Walls = importer.WallsFromCenterlines(result.Centerlines, p.Settings)
	for i, fp := range result.Footprints {
		p.Roofs = append(p.Roofs, model.Roof{
			ID:         fmt.Sprintf("roof-%d", i+1),
			Label:      fmt.Sprintf("Roof %d", i+1),
			BasePoints: fp,
			RoofType:   model.RoofFlat,
			Thickness:  p.Settings.DefaultRoofThickness,
		})
	}

	if err := project.Save(projectPath, p); err != nil {
		return model.Project{}, err
	}
	fmt.Printf("imported %d walls and %d footprints into %s\n",
		len(p.Walls), len(p.Roofs), projectPath)
	return p, nil
}

// projectFromTemplate instantiates a saved template as a fresh project and
// saves it to projectPath.
func projectFromTemplate(name, projectPath string) (model.Project, error) {
	ts, err := project.LoadDefaultTemplates()
	if err != nil {
		return model.Project{}, err
	}
	tpl := ts.FindByName(name)
	if tpl == nil {
		return model.Project{}, fmt.Errorf("no template named %q (available: %s)",
			name, strings.Join(ts.Names(), ", "))
	}

	base := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))
	p := tpl.ToProject(base)
	if err := project.Save(projectPath, p); err != nil {
		return model.Project{}, err
	}
	fmt.Printf("created %s from template %q\n", projectPath, name)
	return p, nil
}

// writeBackup exports the user's config and templates to a single JSON file.
func writeBackup(path string) error {
	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}
	templates, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	if err := project.ExportAllData(path, config, templates); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// addOpenings reads an opening schedule and appends the openings to the wall
// with the given label, validating each against the wall's dimensions.
func addOpenings(p *model.Project, schedulePath, wallLabel string) error {
	if wallLabel == "" {
		return fmt.Errorf("-wall is required with -import-openings")
	}

	idx := -1
	for i, w := range p.Walls {
		if w.Label == wallLabel {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("no wall labeled %q in the project", wallLabel)
	}

	var result importer.OpeningImportResult
	if strings.EqualFold(filepath.Ext(schedulePath), ".xlsx") {
		result = importer.ImportOpeningsExcel(schedulePath)
	} else {
		result = importer.ImportOpeningsCSV(schedulePath)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("import %s: %s", schedulePath, strings.Join(result.Errors, "; "))
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	cutter := engine.NewWallCutter(p.Walls[idx])
	for _, op := range result.Openings {
		if _, err := cutter.AddOpening(op); err != nil {
			return fmt.Errorf("wall %q: %w", wallLabel, err)
		}
	}
	p.Walls[idx].Openings = cutter.Openings()
	fmt.Printf("added %d openings to wall %q\n", len(result.Openings), wallLabel)
	return nil
}

func printSummary(name string, plan engine.Plan) {
	fmt.Printf("\nProject: %s\n", name)
	fmt.Printf("  Walls:  %d\n", len(plan.Walls))
	fmt.Printf("  Stairs: %d\n", len(plan.Stairs))
	fmt.Printf("  Roofs:  %d\n", len(plan.Roofs))
	for _, sp := range plan.Stairs {
		fmt.Printf("  %s: %d steps, riser %.1f mm, tread %.1f mm\n",
			sp.Stairs.Label, sp.Calculation.StairCount,
			sp.Calculation.RiserHeight, sp.Calculation.TreadDepth)
	}
	for _, rp := range plan.Roofs {
		fmt.Printf("  %s: %s, ridge %.0f mm, area %.2f m²\n",
			rp.Roof.Label, rp.Roof.RoofType,
			rp.Calculation.RidgeHeight, rp.Calculation.Area/1e6)
	}
	if len(plan.Issues) > 0 {
		fmt.Println("\nIssues:")
		for _, issue := range plan.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}
}
