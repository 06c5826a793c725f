package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/skasiraj/pMuTT/nasa"
	"github.com/skasiraj/pMuTT/refs"
	"github.com/skasiraj/pMuTT/thermdat"
	"github.com/skasiraj/pMuTT/thermo"
)

// Job is the fit of a single species
type Job struct {
	Species thermo.Species
	Status  string
	Result  nasa.Result
	Err     error
}

// FitJob fits job.Species after applying the reference offsets in set.
// sem bounds the number of concurrent fits.
func FitJob(job *Job, set *refs.Set, cfg Config, sem chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	sem <- struct{}{}
	defer func() { <-sem }()
	job.Status = "running"
	sampler, err := set.Sampler(job.Species)
	if err != nil {
		job.Status = "failed"
		job.Err = err
		return
	}
	job.Result, err = nasa.Fit(sampler, cfg.TLow, cfg.THigh, nasa.Config{
		TMid:     cfg.TMid,
		Points:   cfg.Points,
		Anchor:   cfg.TRef,
		Midpoint: cfg.Midpoint,
	})
	if err != nil {
		job.Status = "failed"
		job.Err = fmt.Errorf("species %s: %w", job.Species.Name, err)
		return
	}
	job.Status = "done"
}

// FitAll fits every species with at most cfg.ConcJobs fits in flight. The
// output keeps the order of species. Every failure is reported, joined into
// the returned error.
func FitAll(species []thermo.Species, set *refs.Set, cfg Config, logger *slog.Logger) ([]thermdat.Species, error) {
	jobs := make([]Job, len(species))
	conc := cfg.ConcJobs
	if conc < 1 {
		conc = 1
	}
	sem := make(chan struct{}, conc)
	var wg sync.WaitGroup
	for i := range species {
		jobs[i] = Job{Species: species[i], Status: "queued"}
		wg.Add(1)
		go FitJob(&jobs[i], set, cfg, sem, &wg)
	}
	wg.Wait()

	var errs []error
	out := make([]thermdat.Species, 0, len(jobs))
	for _, job := range jobs {
		if job.Err != nil {
			logger.Error("fit failed", "species", job.Species.Name, "err", job.Err)
			errs = append(errs, job.Err)
			continue
		}
		q := job.Result.Quality
		logger.Info("fitted",
			"species", job.Species.Name,
			"t_mid", job.Result.TMid,
			"cp_rmse", q.CpoRRMSE,
			"max_rel_dev", q.MaxRelDev,
		)
		logger.Debug("continuity",
			"species", job.Species.Name,
			"cp_jump", q.CpoRJump,
			"h_jump", q.HoRTJump,
			"s_jump", q.SoRJump,
		)
		if q.MaxRelDev > cfg.MaxRelDev {
			logger.Warn("poor fit",
				"species", job.Species.Name,
				"max_rel_dev", q.MaxRelDev,
				"threshold", cfg.MaxRelDev,
			)
		}
		out = append(out, thermdat.Species{
			Name:       job.Species.Name,
			Code:       cfg.Code,
			Phase:      job.Species.Phase,
			Elements:   job.Species.Elements,
			Polynomial: job.Result.Polynomial,
		})
	}
	return out, errors.Join(errs...)
}

// Run loads the inputs named by cfg, fits every species and writes the
// thermdat file. Nothing is written unless every species fits.
func Run(cfg Config, logger *slog.Logger) error {
	set, err := LoadReferences(cfg.References)
	if err != nil {
		return err
	}
	if set != nil {
		logger.Debug("reference offsets", "t_ref", set.TRef, "offsets", set.Offsets)
	}
	species, err := LoadSpecies(cfg.Species)
	if err != nil {
		return err
	}
	logger.Info("fitting", "species", len(species), "t_low", cfg.TLow, "t_high", cfg.THigh)
	fitted, err := FitAll(species, set, cfg, logger)
	if err != nil {
		return err
	}
	text, err := thermdat.Format(fitted)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output, []byte(text), 0644); err != nil {
		return err
	}
	logger.Info("wrote", "file", cfg.Output)
	return nil
}
