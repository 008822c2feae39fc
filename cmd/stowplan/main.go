// StowPlan — Truck Loading Planner
//
// Plans crate placements inside a truck's cargo volume and exports the
// loading sequence as text, PDF, spreadsheet, DXF floor plan, QR labels,
// or a loader script.
//
// Build:
//   go build -o stowplan ./cmd/stowplan
//
// Typical runs:
//   stowplan -truck 24x22x61 -crates shipment.csv
//   stowplan -preset "7.5t Box Truck" -crates shipment.xlsx -pdf plan.pdf
//   stowplan -truck 24x22x61 -crates shipment.csv -script plan.txt -profile AGV-500
//   stowplan -crates shipment.csv -compare
//   stowplan -truck 24x22x61 -crates shipment.csv -whatif
//   stowplan -template "Weekly Shipment" -pdf plan.pdf
//   stowplan -backup stowplan-backup.json

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/piwi3910/StowPlan/internal/engine"
	"github.com/piwi3910/StowPlan/internal/export"
	"github.com/piwi3910/StowPlan/internal/importer"
	"github.com/piwi3910/StowPlan/internal/model"
	"github.com/piwi3910/StowPlan/internal/project"
	"github.com/piwi3910/StowPlan/internal/script"
)

// Exit codes for scripting around the planner.
const (
	exitOK        = 0
	exitError     = 1
	exitCapacity  = 2
	exitPlacement = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		truckSpec   = flag.String("truck", "", "truck interior as WxHxL in grid units, e.g. 24x22x61")
		truckLabel  = flag.String("truck-label", "Truck", "label for a truck given via -truck")
		presetName  = flag.String("preset", "", "use a truck preset from the inventory instead of -truck")
		cratesPath  = flag.String("crates", "", "crate manifest file (.csv or .xlsx)")
		projectPath = flag.String("project", "", "load truck and crates from a saved project file")
		savePath    = flag.String("save", "", "save the project (with the plan) to this file")

		templateName     = flag.String("template", "", "start from a saved template instead of -truck/-crates")
		saveTemplateName = flag.String("save-template", "", "save the truck, crates, and settings as a reusable template")

		backupPath        = flag.String("backup", "", "export config, inventory, and templates to this file and exit")
		restorePath       = flag.String("restore", "", "restore config, inventory, and templates from a backup file and exit")
		importProfilePath = flag.String("import-profile", "", "add a loader profile from a JSON file to the custom profile store and exit")
		exportProfilePath = flag.String("export-profile", "", "write the active loader profile to a JSON file and exit")

		supportFlag = flag.Float64("support", -1, "required support ratio for stacked crates (0..1, default from config)")
		profileName = flag.String("profile", "", "loader profile for -script output (default from config)")

		scriptPath = flag.String("script", "", "write a loader script to this file")
		pdfPath    = flag.String("pdf", "", "write a PDF plan to this file")
		labelsPath = flag.String("labels", "", "write QR crate labels (PDF) to this file")
		xlsxPath   = flag.String("xlsx", "", "write a spreadsheet manifest to this file")
		dxfPath    = flag.String("dxf", "", "write a DXF floor plan to this file")

		doVerify   = flag.Bool("verify", false, "replay the finished plan and report violations")
		doCompare  = flag.Bool("compare", false, "try the shipment against every truck preset")
		doWhatIf   = flag.Bool("whatif", false, "re-plan under relaxed and full support requirements")
		doEstimate = flag.Bool("estimate", false, "print a volume estimate without planning")
	)
	flag.Parse()

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot read config: %v\n", err)
		cfg = model.DefaultAppConfig()
	}

	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	// Maintenance modes need no truck or manifest.
	if *backupPath != "" || *restorePath != "" || *importProfilePath != "" || *exportProfilePath != "" {
		if *profileName != "" {
			settings.LoaderProfile = *profileName
		}
		return runMaintenance(cfg, settings, *backupPath, *restorePath, *importProfilePath, *exportProfilePath)
	}

	// Assemble truck and crates, from a project file, a template, or flags.
	var truck model.Truck
	var crates []model.Crate
	var proj model.Project

	switch {
	case *projectPath != "":
		proj, err = project.LoadProject(*projectPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		truck = proj.Truck
		crates = proj.Crates
		settings = proj.Settings
	case *templateName != "":
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot load templates: %v\n", err)
			return exitError
		}
		tmpl := store.FindByName(*templateName)
		if tmpl == nil {
			fmt.Fprintf(os.Stderr, "error: unknown template %q (have: %v)\n", *templateName, store.Names())
			return exitError
		}
		proj = tmpl.ToProject(tmpl.Name)
		truck = proj.Truck
		crates = proj.Crates
		settings = proj.Settings
	default:
		proj = model.NewProject()
		truck, err = resolveTruck(*truckSpec, *truckLabel, *presetName)
		if err != nil && !*doCompare {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		if *cratesPath == "" {
			fmt.Fprintln(os.Stderr, "error: no crates given (use -crates or -project)")
			flag.Usage()
			return exitError
		}
		crates, err = loadCrates(*cratesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		proj.Truck = truck
		proj.Crates = crates
	}

	// Command-line overrides beat both config and project settings.
	if *supportFlag >= 0 {
		if *supportFlag > 1 {
			fmt.Fprintln(os.Stderr, "error: -support must be between 0 and 1")
			return exitError
		}
		settings.SupportRatio = *supportFlag
	}
	if *profileName != "" {
		settings.LoaderProfile = *profileName
	}
	proj.Settings = settings

	if *saveTemplateName != "" {
		if code := saveTemplate(*saveTemplateName, truck, crates, settings); code != exitOK {
			return code
		}
	}

	expanded := model.ExpandCrates(crates)

	if *doEstimate {
		printEstimate(crates, truck)
		return exitOK
	}

	if *doCompare {
		return runComparison(expanded, settings)
	}

	if *doWhatIf {
		scenarios := engine.BuildDefaultScenarios(truck, settings)
		printScenarioTable(engine.CompareScenarios(scenarios, expanded))
		return exitOK
	}

	planner := engine.New(settings)
	result, err := planner.Plan(truck, expanded)
	if err != nil {
		var capErr *engine.CapacityError
		var placeErr *engine.PlacementError
		switch {
		case errors.As(err, &capErr):
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitCapacity
		case errors.As(err, &placeErr):
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitPlacement
		default:
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
	}

	printPlan(result)

	if *doVerify || cfg.AutoVerify {
		violations := engine.Verify(truck, settings, result)
		if len(violations) > 0 {
			fmt.Fprintln(os.Stderr, "plan verification failed:")
			for _, v := range violations {
				fmt.Fprintf(os.Stderr, "  [%s] crate %d: %s\n", v.Kind, v.CrateID, v.Detail)
			}
			return exitError
		}
		if *doVerify {
			fmt.Println("Verification: plan replays cleanly.")
		}
	}

	if code := writeOutputs(result, settings, *scriptPath, *pdfPath, *labelsPath, *xlsxPath, *dxfPath); code != exitOK {
		return code
	}

	if *savePath != "" {
		proj.Result = &result
		if err := project.SaveProject(*savePath, proj); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot save project: %v\n", err)
			return exitError
		}
		cfg.AddRecentProject(*savePath)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot update config: %v\n", err)
		}
		fmt.Printf("Project saved to %s\n", *savePath)
	}

	return exitOK
}

// resolveTruck builds the truck from either an explicit WxHxL spec or an
// inventory preset name.
func resolveTruck(spec, label, preset string) (model.Truck, error) {
	if preset != "" {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return model.Truck{}, fmt.Errorf("cannot load inventory: %w", err)
		}
		tp := inv.FindTruckByName(preset)
		if tp == nil {
			return model.Truck{}, fmt.Errorf("unknown truck preset %q (have: %v)", preset, inv.TruckNames())
		}
		return tp.ToTruck(), nil
	}

	if spec == "" {
		return model.Truck{}, errors.New("no truck given (use -truck WxHxL or -preset)")
	}
	var w, h, l int
	if n, err := fmt.Sscanf(spec, "%dx%dx%d", &w, &h, &l); err != nil || n != 3 {
		return model.Truck{}, fmt.Errorf("invalid truck spec %q, want WxHxL", spec)
	}
	if w <= 0 || h <= 0 || l <= 0 {
		return model.Truck{}, fmt.Errorf("truck extents must be positive, got %q", spec)
	}
	return model.NewTruck(label, w, h, l), nil
}

// loadCrates imports the manifest and fails on any row errors.
func loadCrates(path string) ([]model.Crate, error) {
	res := importer.ImportFile(path)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		return nil, fmt.Errorf("crate manifest %s has %d bad rows", path, len(res.Errors))
	}
	if len(res.Crates) == 0 {
		return nil, fmt.Errorf("crate manifest %s holds no crates", path)
	}
	return res.Crates, nil
}

func printEstimate(crates []model.Crate, truck model.Truck) {
	est := model.CalculateLoadEstimate(crates, truck, model.DefaultSlackPercent)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Crates:\t%d\n", est.CrateCount)
	fmt.Fprintf(w, "Crate volume:\t%d cells\n", est.TotalCrateVolume)
	fmt.Fprintf(w, "Truck volume:\t%d cells\n", est.TruckVolume)
	fmt.Fprintf(w, "Utilization:\t%.1f%%\n", est.UtilizationPct)
	fmt.Fprintf(w, "Fits by volume:\t%v\n", est.Fits)
	fmt.Fprintf(w, "Trucks needed:\t%d (with %d%% slack: %d)\n",
		est.TrucksNeededMin, int(est.SlackPercent), est.TrucksWithSlack)
	w.Flush()
}

func runComparison(crates []model.Crate, settings model.StowSettings) int {
	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot load inventory: %v\n", err)
		return exitError
	}
	scenarios := engine.BuildTruckScenarios(inv.Trucks, settings)
	printScenarioTable(engine.CompareScenarios(scenarios, crates))
	return exitOK
}

func printScenarioTable(results []engine.ComparisonResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Scenario\tPlanned\tSteps\tUtilization\tMax Stack\tNote")
	for _, r := range results {
		note := ""
		if r.Err != nil {
			note = r.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%v\t%d\t%.1f%%\t%d\t%s\n",
			r.Scenario.Name, r.Planned, r.StepsUsed, r.UtilizationPct, r.MaxStackHeight, note)
	}
	w.Flush()
}

// saveTemplate captures the current inputs into the default template store,
// replacing a template of the same name.
func saveTemplate(name string, truck model.Truck, crates []model.Crate, settings model.StowSettings) int {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot load templates: %v\n", err)
		return exitError
	}
	if existing := store.FindByName(name); existing != nil {
		existing.Truck = truck
		existing.Crates = crates
		existing.Settings = settings
		existing.Touch()
	} else {
		store.Templates = append(store.Templates, model.NewProjectTemplate(name, "", truck, crates, settings))
	}
	if err := project.SaveDefaultTemplates(store); err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot save templates: %v\n", err)
		return exitError
	}
	fmt.Printf("Template %q saved\n", name)
	return exitOK
}

// runMaintenance handles the data-management modes that run without a plan:
// backup/restore of all application data and profile sharing.
func runMaintenance(cfg model.AppConfig, settings model.StowSettings, backupPath, restorePath, importProfilePath, exportProfilePath string) int {
	if backupPath != "" {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot load inventory: %v\n", err)
			return exitError
		}
		templates, err := project.LoadDefaultTemplates()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot load templates: %v\n", err)
			return exitError
		}
		if err := project.ExportAllData(backupPath, cfg, inv, templates); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		fmt.Printf("Application data backed up to %s\n", backupPath)
	}

	if restorePath != "" {
		backup, err := project.ImportAllData(restorePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write config: %v\n", err)
			return exitError
		}
		invPath, err := project.DefaultInventoryPath()
		if err == nil {
			err = project.SaveInventory(invPath, backup.Inventory)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write inventory: %v\n", err)
			return exitError
		}
		if err := project.SaveDefaultTemplates(backup.Templates); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write templates: %v\n", err)
			return exitError
		}
		fmt.Printf("Application data restored from %s\n", restorePath)
	}

	if importProfilePath != "" {
		profile, err := project.ImportProfile(importProfilePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		custom, err := project.LoadCustomProfilesFromDefault()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot load custom profiles: %v\n", err)
			return exitError
		}
		replaced := false
		for i := range custom {
			if custom[i].Name == profile.Name {
				custom[i] = profile
				replaced = true
			}
		}
		if !replaced {
			custom = append(custom, profile)
		}
		if err := project.SaveCustomProfilesToDefault(custom); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot save custom profiles: %v\n", err)
			return exitError
		}
		fmt.Printf("Loader profile %q added to the custom profile store\n", profile.Name)
	}

	if exportProfilePath != "" {
		custom, err := project.LoadCustomProfilesFromDefault()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot load custom profiles: %v\n", err)
		}
		profile := project.ResolveProfile(settings.LoaderProfile, custom)
		if err := project.ExportProfile(exportProfilePath, profile); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitError
		}
		fmt.Printf("Loader profile %q exported to %s\n", profile.Name, exportProfilePath)
	}

	return exitOK
}

func printPlan(result model.PlanResult) {
	fmt.Printf("Plan for %s (%d x %d x %d units)\n\n",
		result.Truck.Label, result.Truck.Width, result.Truck.Height, result.Truck.Length)

	ordered := append([]model.Placement(nil), result.Placements...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return result.Instructions[ordered[i].Crate.ID].Step <
			result.Instructions[ordered[j].Crate.ID].Step
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Step\tCrate\tLabel\tSize\tPosition\tOrientation")
	for _, p := range ordered {
		inst := result.Instructions[p.Crate.ID]
		orient := "as delivered"
		switch {
		case inst.TurnedHorizontal:
			orient = "turned horizontal"
		case inst.TurnedVertical:
			orient = "turned vertical"
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%dx%dx%d\t(%d, %d, %d)\t%s\n",
			inst.Step, p.Crate.ID, p.Crate.Label,
			p.Crate.Width, p.Crate.Height, p.Crate.Length,
			inst.X, inst.Y, inst.Z, orient)
	}
	w.Flush()

	residual := model.CalculateResidual(result.Truck, result.Placements)
	lashing := model.CalculateLashing(result.Placements, model.DefaultStrapInterval, model.DefaultSlackPercent)

	fmt.Printf("\nCrates: %d   Utilization: %.1f%%   Free floor: %d cells   Tail clearance: %d units\n",
		result.Steps(), result.Utilization(), residual.FreeFloorCells, residual.TailClearance)
	fmt.Printf("Lashing: %d straps, %.1f m strap (%.1f m with slack)\n",
		lashing.StrapCount, lashing.TotalLinearM, lashing.TotalWithSlackM)
}

func writeOutputs(result model.PlanResult, settings model.StowSettings, scriptPath, pdfPath, labelsPath, xlsxPath, dxfPath string) int {
	if scriptPath != "" {
		custom, err := project.LoadCustomProfilesFromDefault()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot load custom profiles: %v\n", err)
		}
		profile := project.ResolveProfile(settings.LoaderProfile, custom)
		text := script.NewWithProfile(settings, profile).Generate(result)
		if err := os.WriteFile(scriptPath, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write script: %v\n", err)
			return exitError
		}
		fmt.Printf("Loader script (%s) written to %s\n", profile.Name, scriptPath)
	}
	if pdfPath != "" {
		if err := export.ExportPDF(pdfPath, result, settings); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write PDF: %v\n", err)
			return exitError
		}
		fmt.Printf("PDF plan written to %s\n", pdfPath)
	}
	if labelsPath != "" {
		if err := export.ExportLabels(labelsPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write labels: %v\n", err)
			return exitError
		}
		fmt.Printf("Crate labels written to %s\n", labelsPath)
	}
	if xlsxPath != "" {
		if err := export.ExportXLSX(xlsxPath, result, settings); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write spreadsheet: %v\n", err)
			return exitError
		}
		fmt.Printf("Spreadsheet written to %s\n", xlsxPath)
	}
	if dxfPath != "" {
		if err := export.ExportDXF(dxfPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot write DXF: %v\n", err)
			return exitError
		}
		fmt.Printf("DXF floor plan written to %s\n", dxfPath)
	}
	return exitOK
}
