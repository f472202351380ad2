package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	tvs "github.com/tombh/total-viewsheds"
	"github.com/tombh/total-viewsheds/cache"
	"github.com/tombh/total-viewsheds/rasterio"
	"github.com/tombh/total-viewsheds/search"
)

func loadGrid(cfg *tvs.Config) (*tvs.Grid, rasterio.Header, error) {
	header, elevations, err := rasterio.ReadGrid(cfg.InputFile)
	if err != nil {
		return nil, rasterio.Header{}, fmt.Errorf("%s: %w", cfg.InputFile, errors.Join(tvs.ErrOpenInput, err))
	}
	cfg.DEMWidth = int(header.Cols)
	cfg.DEMHeight = int(header.Rows)
	g, err := tvs.NewGrid(int(header.Cols), int(header.Rows), elevations, cfg.DEMScale, cfg.MaxLineOfSight)
	if err != nil {
		return nil, rasterio.Header{}, err
	}
	return g, header, nil
}

// precomputeDEM runs the precompute pass: every sector angle, every
// point, recording its BoS insertion journal to its per-angle cache
// file, then discards the surface/volume numbers themselves since
// compute regenerates them.
func precomputeDEM(cfg *tvs.Config) error {
	g, _, err := loadGrid(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	horizonCfg := horizonConfigFrom(cfg)

	angles := tvs.SectorAngles(cfg)
	for _, angle := range angles {
		sector := tvs.NewGridCopy(g)
		store := cache.NewJournalStore()
		log.Println("precompute sector", angle)
		if _, err := tvs.RunSector(sector, angle, cfg.SectorShift, horizonCfg, true, store, false, cfg.Strict); err != nil {
			return err
		}
		if err := store.Flush(cfg.SectorCachePath(angle)); err != nil {
			return err
		}
	}
	return nil
}

// computeDEM runs the compute pass: every sector angle replays its
// cached journal and sweeps the horizon kernel, merging into the final
// TVS raster.
func computeDEM(cfg *tvs.Config) error {
	g, header, err := loadGrid(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	horizonCfg := horizonConfigFrom(cfg)

	acc := tvs.RunAllSectors(cfg, cfg.Workers, func(angle int) tvs.SectorResult {
		sector := tvs.NewGridCopy(g)
		store, err := cache.LoadJournalStore(cfg.SectorCachePath(angle))
		if err != nil {
			log.Fatalf("sector %d: %v", angle, errors.Join(tvs.ErrOpenCache, err))
		}
		log.Println("compute sector", angle)
		result, err := tvs.RunSector(sector, angle, cfg.SectorShift, horizonCfg, false, store, cfg.WriteRingSectorFiles, cfg.Strict)
		if err != nil {
			log.Fatalf("sector %d: %v", angle, err)
		}
		if cfg.WriteRingSectorFiles {
			if err := writeRingSectorFile(cfg, g, result); err != nil {
				log.Fatalf("sector %d: writing ring sectors: %v", angle, err)
			}
		}
		return result
	})

	values := make([]float32, len(acc.Surface))
	for i, v := range acc.Surface {
		values[i] = float32(v)
	}
	width := g.ComputableSide
	if err := rasterio.WriteTVS(cfg.TVSFile, header, computableOnly(g, values), width, width, cfg.MaxLineOfSight); err != nil {
		return errors.Join(tvs.ErrOpenOutput, err)
	}

	if cfg.Volumetric && acc.Volume != nil {
		volValues := make([]float32, len(acc.Volume))
		for i, v := range acc.Volume {
			volValues[i] = float32(v)
		}
		if err := rasterio.WriteTVS(cfg.VolumeFile, header, computableOnly(g, volValues), width, width, cfg.MaxLineOfSight); err != nil {
			return errors.Join(tvs.ErrOpenOutput, err)
		}
	}

	if cfg.OutputDir != "" {
		manifest := runManifest{
			Input:          cfg.InputFile,
			TVSFile:        cfg.TVSFile,
			VolumeFile:     cfg.VolumeFile,
			SectorAngles:   tvs.SectorAngles(cfg),
			ComputableSide: g.ComputableSide,
			Volumetric:     cfg.Volumetric,
			CurvedEarth:    cfg.CurvedEarth,
		}
		log.Println("writing run manifest to", cfg.OutputDir)
		if jsn, err := tvs.JsonIndentDumps(manifest); err == nil {
			log.Println(jsn)
		}
		if _, err := tvs.WriteJson(filepath.Join(cfg.OutputDir, filepath.Base(cfg.TVSFile)+".json"), manifest); err != nil {
			return err
		}
	}

	return nil
}

// runManifest is the per-run metadata exported alongside the binary
// rasters: which sector angles were merged and into which files, so a
// batch run's output directory is self-describing without replaying
// the config that produced it.
type runManifest struct {
	Input          string `json:"input"`
	TVSFile        string `json:"tvs_file"`
	VolumeFile     string `json:"volume_file,omitempty"`
	SectorAngles   []int  `json:"sector_angles"`
	ComputableSide int    `json:"computable_side"`
	Volumetric     bool   `json:"volumetric"`
	CurvedEarth    bool   `json:"curved_earth"`
}

// computableOnly extracts just the computable-core sub-raster, in grid
// order, from a full-grid per-point array.
func computableOnly(g *tvs.Grid, full []float32) []float32 {
	out := make([]float32, 0, g.ComputableSide*g.ComputableSide)
	for _, id := range g.ComputableIDs() {
		out = append(out, full[id])
	}
	return out
}

// writeRingSectorFile persists one sector angle's per-point ring-sector
// breakdown to cfg.RingSectorPath(result.Angle), in computable-grid
// order so ReadRingSectors can line the n-th entry back up with
// Grid.ComputableIDs()[n].
//
// When cfg.HasTower() is set (SPEC_FULL.md §10's per-tower coverage
// bookkeeping, grounded on original_source/src/Sector.h's
// coverstore/towerloc single-observer capture), the file holds just
// that one observer's entry instead of every computable point's.
func writeRingSectorFile(cfg *tvs.Config, g *tvs.Grid, result tvs.SectorResult) error {
	byPoint := make(map[int]tvs.PointRings, len(result.Rings))
	for _, pr := range result.Rings {
		byPoint[pr.PointID] = pr
	}

	if cfg.HasTower() {
		towerID := g.ID(cfg.TowerX, cfg.TowerY)
		if !g.IsComputable(towerID) {
			return fmt.Errorf("tower point (%d, %d): %w", cfg.TowerX, cfg.TowerY, tvs.ErrTowerNotComputable)
		}
		pr := byPoint[towerID]
		entry := cache.RingSectorEntry{Forward: flattenRings(pr.Forward), Backward: flattenRings(pr.Backward)}
		return cache.WriteRingSectors(cfg.RingSectorPath(result.Angle), []cache.RingSectorEntry{entry})
	}

	entries := make([]cache.RingSectorEntry, 0, len(result.Rings))
	for _, id := range g.ComputableIDs() {
		pr := byPoint[id]
		entries = append(entries, cache.RingSectorEntry{
			Forward:  flattenRings(pr.Forward),
			Backward: flattenRings(pr.Backward),
		})
	}

	return cache.WriteRingSectors(cfg.RingSectorPath(result.Angle), entries)
}

// flattenRings lays out a point's ring sectors as alternating
// open/close point ids, the layout cache.RingSectorEntry expects.
func flattenRings(rings []tvs.RingSector) []int32 {
	ids := make([]int32, 0, len(rings)*2)
	for _, r := range rings {
		ids = append(ids, int32(r.Open), int32(r.Close))
	}
	return ids
}

func horizonConfigFrom(cfg *tvs.Config) tvs.HorizonConfig {
	return tvs.HorizonConfig{
		ObserverHeight:     cfg.ObserverHeight,
		CurvedEarth:        cfg.CurvedEarth,
		EarthRadiusInCells: cfg.EarthRadiusInCells,
		Volumetric:         cfg.Volumetric,
		DiscardShortRings:  cfg.DiscardShortRings,
		ShortRingThreshold: cfg.ShortRingThreshold,
		Scale:              cfg.DEMScale,
	}
}

func runBatch(inputDir string, cfgFrom func(input string) *tvs.Config) error {
	items, err := search.FindDEM(inputDir)
	if err != nil {
		return err
	}
	log.Println("found", len(items), "DEM files under", inputDir)

	for _, item := range items {
		cfg := cfgFrom(item)
		log.Println("running", item)
		if err := precomputeDEM(cfg); err != nil {
			return err
		}
		if err := computeDEM(cfg); err != nil {
			return err
		}
	}
	return nil
}

func configFromFlags(c *cli.Context) *tvs.Config {
	cfg := tvs.DefaultConfig()
	cfg.InputFile = c.String("input")
	cfg.OutputDir = c.String("outdir")
	cfg.SectorCacheDir = c.String("sector-cache-dir")
	cfg.RingSectorDir = c.String("ring-sector-dir")
	cfg.TVSFile = c.String("tvs-file")
	cfg.VolumeFile = c.String("volume-file")
	if v := c.Float64("dem-scale"); v > 0 {
		cfg.DEMScale = v
	}
	if v := c.Float64("observer-height"); v > 0 {
		cfg.ObserverHeight = v
	}
	if v := c.Int("total-sectors"); v > 0 {
		cfg.TotalSectors = v
	}
	if v := c.Int("single-sector"); v >= 0 {
		cfg.SingleSector = v
	}
	cfg.Volumetric = c.Bool("volumetric")
	cfg.CurvedEarth = c.Bool("curved-earth")
	cfg.WriteRingSectorFiles = c.Bool("write-ring-sectors")
	cfg.TowerX = c.Int("tower-x")
	cfg.TowerY = c.Int("tower-y")
	cfg.Workers = c.Int("workers")
	cfg.Strict = c.Bool("strict")
	return &cfg
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "input", Usage: "Path to the elevation DEM file."},
		&cli.StringFlag{Name: "outdir", Usage: "Output directory."},
		&cli.StringFlag{Name: "sector-cache-dir", Usage: "Directory holding per-sector cache files."},
		&cli.StringFlag{Name: "ring-sector-dir", Usage: "Directory holding optional per-sector ring-sector files."},
		&cli.StringFlag{Name: "tvs-file", Usage: "Output path for the TVS raster."},
		&cli.StringFlag{Name: "volume-file", Usage: "Output path for the optional volume raster."},
		&cli.Float64Flag{Name: "dem-scale", Usage: "Cell side length in metres."},
		&cli.Float64Flag{Name: "observer-height", Usage: "Observer height above ground in metres."},
		&cli.IntFlag{Name: "total-sectors", Usage: "Number of sector angles, must divide 180."},
		&cli.IntFlag{Name: "single-sector", Value: -1, Usage: "Run only one sector angle."},
		&cli.BoolFlag{Name: "volumetric", Usage: "Also accumulate the volumetric term."},
		&cli.BoolFlag{Name: "curved-earth", Usage: "Apply the curved-earth correction."},
		&cli.BoolFlag{Name: "write-ring-sectors", Usage: "Persist the per-point ring-sector breakdown."},
		&cli.IntFlag{Name: "tower-x", Value: -1, Usage: "Restrict the ring-sector file to one observer's x coordinate (requires tower-y)."},
		&cli.IntFlag{Name: "tower-y", Value: -1, Usage: "Restrict the ring-sector file to one observer's y coordinate (requires tower-x)."},
		&cli.IntFlag{Name: "workers", Usage: "Worker pool size, 0 means runtime.NumCPU()."},
		&cli.BoolFlag{Name: "strict", Usage: "Run the per-sector invariant checks inline and abort on the first violation."},
	}
}

func main() {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "precompute",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					return precomputeDEM(configFromFlags(c))
				},
			},
			{
				Name:  "compute",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					return computeDEM(configFromFlags(c))
				},
			},
			{
				Name:  "run",
				Flags: commonFlags(),
				Action: func(c *cli.Context) error {
					cfg := configFromFlags(c)
					if err := precomputeDEM(cfg); err != nil {
						return err
					}
					return computeDEM(cfg)
				},
			},
			{
				Name: "run-batch",
				Flags: append(commonFlags(), &cli.StringFlag{
					Name:  "trawl-dir",
					Usage: "Directory to recursively search for *.dem files.",
				}),
				Action: func(c *cli.Context) error {
					base := configFromFlags(c)
					return runBatch(c.String("trawl-dir"), func(input string) *tvs.Config {
						cfg := *base
						cfg.InputFile = input
						name := filepath.Base(input)
						cfg.TVSFile = filepath.Join(cfg.OutputDir, name+".tvs")
						return &cfg
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
