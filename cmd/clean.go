package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/bnema/shipshape/internal/backend/buildx"
	"github.com/bnema/shipshape/internal/backend/docker"
	"github.com/bnema/shipshape/internal/backend/kind"
	"github.com/bnema/shipshape/internal/backend/minikube"
	"github.com/bnema/shipshape/internal/config"
	"github.com/bnema/shipshape/internal/engine"
	"github.com/bnema/shipshape/internal/platform"
	"github.com/bnema/shipshape/internal/policy"
	"github.com/bnema/shipshape/internal/report"
	"github.com/bnema/shipshape/internal/scope"
	"github.com/bnema/shipshape/pkg/logger"
)

func runClean(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return err
	}

	log := logger.GetLogger()
	log.ConfigureFromEnv()
	quiet := opts.quiet || cfg.Quiet
	switch {
	case quiet:
		log.SetQuiet()
	case opts.verbose:
		log.SetVerbose()
	}

	mode := engine.Mode{
		DryRun:  opts.dryRun,
		Verbose: opts.verbose,
		Quiet:   quiet,
		Confirm: opts.confirm,
	}

	age := policy.NoAgeLimit()
	switch {
	case opts.olderThan >= 0:
		age = policy.OlderThanDays(opts.olderThan)
	case cfg.OlderThanDays >= 0:
		age = policy.OlderThanDays(cfg.OlderThanDays)
	}

	excl := buildExclusions(cfg)

	dockerCli, err := docker.NewClient(ctx)
	if err != nil {
		logger.Debug("Docker categories will be skipped", "error", err)
		dockerCli = nil
	} else {
		defer dockerCli.Close()
	}

	if opts.protectCurrentDir && dockerCli != nil {
		if cwd, err := os.Getwd(); err == nil {
			resolved := scope.Resolve(ctx, dockerCli, cwd)
			excl.containers.Add(resolved.Containers...)
			excl.images.Add(resolved.Images...)
			excl.volumes.Add(resolved.Volumes...)
		}
	}

	rep := report.New()
	eng := &engine.Engine{Mode: mode, Age: age, Report: rep}

	pipe := &engine.Pipeline{
		Engine:             eng,
		Selector:           buildSelector(),
		Platform:           platform.Detect(),
		CleanLogs:          opts.cleanLogs,
		ResetDockerDesktop: opts.resetDockerDesktop,
		BuilderExclusions:  excl.builders,
	}

	if dockerCli != nil {
		pipe.Containers = engine.Category{
			Label:      report.Containers,
			Kind:       policy.KindContainer,
			List:       dockerCli.ListContainers,
			Delete:     func(ctx context.Context, r policy.Resource) error { return dockerCli.RemoveContainer(ctx, r.ID) },
			Exclusions: excl.containers, AgeFiltered: true,
		}
		pipe.Images = engine.Category{
			Label:      report.Images,
			Kind:       policy.KindImage,
			List:       dockerCli.ListImages,
			Delete:     func(ctx context.Context, r policy.Resource) error { return dockerCli.RemoveImage(ctx, r.ID) },
			Exclusions: excl.images, AgeFiltered: true,
		}
		pipe.Volumes = engine.Category{
			Label:      report.Volumes,
			Kind:       policy.KindVolume,
			List:       dockerCli.ListVolumes,
			Delete:     func(ctx context.Context, r policy.Resource) error { return dockerCli.RemoveVolume(ctx, r.ID) },
			Exclusions: excl.volumes, AgeFiltered: true,
		}
		pipe.Pruner = dockerCli
		pipe.Logs = dockerCli
	}

	if bx, err := buildx.New(); err == nil {
		pipe.Builders = bx
	}
	if mk, err := minikube.New(); err == nil {
		pipe.Minikube = engine.Category{
			Label:      report.MinikubeProfiles,
			Kind:       policy.KindClusterProfile,
			List:       mk.ListProfiles,
			Delete:     func(ctx context.Context, r policy.Resource) error { return mk.DeleteProfile(ctx, r.Name) },
			Exclusions: excl.minikube,
		}
	}
	if kd, err := kind.New(); err == nil {
		pipe.Kind = engine.Category{
			Label:      report.KindClusters,
			Kind:       policy.KindClusterProfile,
			List:       kd.ListClusters,
			Delete:     func(ctx context.Context, r policy.Resource) error { return kd.DeleteCluster(ctx, r.Name) },
			Exclusions: excl.kind,
		}
	}

	var usedBefore uint64
	diskTracked := false
	if usage, err := disk.Usage("/"); err == nil {
		usedBefore = usage.Used
		diskTracked = true
	}

	if mode.DryRun && !quiet {
		color.Yellow("Dry run: nothing will be deleted")
	}

	pipe.Run(ctx)

	if diskTracked {
		if usage, err := disk.Usage("/"); err == nil {
			rep.SetDiskUsage(usedBefore, usage.Used)
		}
	}

	if !quiet {
		fmt.Println(rep.Render())
	}
	return nil
}

type exclusions struct {
	containers *policy.ExclusionSet
	images     *policy.ExclusionSet
	volumes    *policy.ExclusionSet
	builders   *policy.ExclusionSet
	minikube   *policy.ExclusionSet
	kind       *policy.ExclusionSet
}

// Flag values are space separated lists; config entries come pre-split.
func buildExclusions(cfg *config.Config) exclusions {
	merge := func(flagValue string, fromConfig []string) *policy.ExclusionSet {
		s := policy.NewExclusionSet(strings.Fields(flagValue)...)
		s.Add(fromConfig...)
		return s
	}
	return exclusions{
		containers: merge(opts.excludeContainers, cfg.Exclude.Containers),
		images:     merge(opts.excludeImages, cfg.Exclude.Images),
		volumes:    merge(opts.excludeVolumes, cfg.Exclude.Volumes),
		builders:   merge(opts.excludeBuilders, cfg.Exclude.Builders),
		minikube:   merge(opts.excludeMinikube, cfg.Exclude.Minikube),
		kind:       merge(opts.excludeKind, cfg.Exclude.Kind),
	}
}

// Any --only-* flag narrows the run to the chosen categories; none means
// everything.
func buildSelector() engine.Selector {
	var only []string
	for _, o := range []struct {
		set   bool
		scope string
	}{
		{opts.onlyContainers, engine.ScopeContainers},
		{opts.onlyImages, engine.ScopeImages},
		{opts.onlyVolumes, engine.ScopeVolumes},
		{opts.onlyBuilders, engine.ScopeBuilders},
		{opts.onlyMinikube, engine.ScopeMinikube},
		{opts.onlyKind, engine.ScopeKind},
		{opts.onlyDangling, engine.ScopeDangling},
		{opts.onlyLogs, engine.ScopeLogs},
	} {
		if o.set {
			only = append(only, o.scope)
		}
	}
	return engine.SelectOnly(only...)
}
