// Package cmd wires the CLI surface. The root command is the cleanup run
// itself; an unrecognized flag makes cobra fail before any cleanup begins
// and the process exits 1.
package cmd

import (
	"github.com/spf13/cobra"

	_ "github.com/joho/godotenv/autoload"
)

var (
	// BuildVersion, BuildCommit and BuildDate are injected at link time.
	BuildVersion = "dev"
	BuildCommit  = "none"
	BuildDate    = "unknown"
)

var opts struct {
	cfgFile string

	excludeContainers string
	excludeImages     string
	excludeVolumes    string
	excludeBuilders   string
	excludeMinikube   string
	excludeKind       string

	protectCurrentDir  bool
	resetDockerDesktop bool
	dryRun             bool
	verbose            bool
	quiet              bool
	confirm            bool
	cleanLogs          bool
	olderThan          int

	onlyContainers bool
	onlyImages     bool
	onlyVolumes    bool
	onlyBuilders   bool
	onlyMinikube   bool
	onlyKind       bool
	onlyDangling   bool
	onlyLogs       bool
}

var rootCmd = &cobra.Command{
	Use:   "shipshape",
	Short: "Clean up container and local-cluster development leftovers",
	Long: `Shipshape enumerates and removes containers, images, volumes, buildx
builders, minikube profiles, kind clusters, dangling resources and container
logs, with per-kind exclusion lists, age filtering and dry-run simulation.
Every delete is best-effort: failures are tallied and the run carries on.`,
	RunE: runClean,
	// Usage belongs with flag errors, not with runtime failures.
	SilenceUsage: true,
}

// Execute runs the root command. A usage error has already been printed by
// cobra when this returns non-nil.
func Execute() error {
	return rootCmd.Execute()
}

// SetBuildInfo records the link-time build metadata shown by version.
func SetBuildInfo(version, commit, date string) {
	if version != "" {
		BuildVersion = version
	}
	if commit != "" {
		BuildCommit = commit
	}
	if date != "" {
		BuildDate = date
	}
}

func init() {
	f := rootCmd.Flags()

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./shipshape.toml)")

	f.StringVar(&opts.excludeContainers, "exclude-containers", "", "space separated containers to keep (id or name)")
	f.StringVar(&opts.excludeImages, "exclude-images", "", "space separated images to keep (id or repo:tag substring)")
	f.StringVar(&opts.excludeVolumes, "exclude-volumes", "", "space separated volumes to keep")
	f.StringVar(&opts.excludeBuilders, "exclude-builders", "", "space separated buildx builders to keep")
	f.StringVar(&opts.excludeMinikube, "exclude-minikube", "", "space separated minikube profiles to keep")
	f.StringVar(&opts.excludeKind, "exclude-kind", "", "space separated kind clusters to keep")

	f.BoolVar(&opts.protectCurrentDir, "protect-current-dir", false, "exclude the current directory's compose project resources")
	f.BoolVar(&opts.resetDockerDesktop, "reset-docker-desktop", false, "wipe Docker Desktop data directories (WSL only)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "report what would be removed without removing anything")
	f.BoolVar(&opts.verbose, "verbose", false, "log every per-resource decision")
	f.BoolVar(&opts.quiet, "quiet", false, "suppress all output, including the final report")
	f.BoolVar(&opts.confirm, "confirm", false, "ask before processing each category")
	f.BoolVar(&opts.cleanLogs, "clean-logs", false, "allow container log truncation (required for the logs category)")
	f.IntVar(&opts.olderThan, "older-than", -1, "only remove resources strictly older than this many days")

	f.BoolVar(&opts.onlyContainers, "only-containers", false, "restrict the run to containers")
	f.BoolVar(&opts.onlyImages, "only-images", false, "restrict the run to images")
	f.BoolVar(&opts.onlyVolumes, "only-volumes", false, "restrict the run to volumes")
	f.BoolVar(&opts.onlyBuilders, "only-builders", false, "restrict the run to buildx builders")
	f.BoolVar(&opts.onlyMinikube, "only-minikube", false, "restrict the run to minikube profiles")
	f.BoolVar(&opts.onlyKind, "only-kind", false, "restrict the run to kind clusters")
	f.BoolVar(&opts.onlyDangling, "only-dangling", false, "restrict the run to dangling resources")
	f.BoolVar(&opts.onlyLogs, "only-logs", false, "restrict the run to container logs")
}
