package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/flanksource/clicky"
	"github.com/flanksource/commons/logger"
	"github.com/flanksource/ftg-affect/internal/clangast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	outputFile  string
	compact     bool
	jsonOutput  bool
	verbose     bool
	showVersion bool
)

// VersionInfo represents version information with pretty formatting.
type VersionInfo struct {
	Program     string `json:"program" pretty:"label=Program,style=text-blue-600 font-bold"`
	Version     string `json:"version" pretty:"label=Version,color=green"`
	Commit      string `json:"commit" pretty:"label=Commit,style=text-gray-600"`
	Built       string `json:"built" pretty:"label=Built,style=text-gray-600"`
	Status      string `json:"status" pretty:"label=Status,color=green=clean,yellow=dirty"`
	MethodKinds string `json:"method_kinds" pretty:"label=Recognized Method Kinds,style=text-gray-600"`
}

var rootCmd = &cobra.Command{
	Use:   "ftg-affect <report.json> <snapshot1-dir> <snapshot2-dir>",
	Short: "Find fuzzers whose public API was transitively affected by AST changes",
	Long: `ftg-affect compares two AST snapshots of the same codebase and reports which
fuzzers, linked to public API functions via a fuzzer-generation report, have
their target transitively affected by a change between the snapshots.

A method is modified when its AST subtree in snapshot 1 has no structurally
equal counterpart in snapshot 2. A public API is affected when the reachable
call graph rooted at it, over snapshot 1, contains at least one modified
method.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return nil
		}
		return cobra.ExactArgs(3)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			printVersionInfo()
			return nil
		}
		return runAnalyze(args[0], args[1], args[2])
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Wait for any background clicky tasks to complete
	exitCode := clicky.WaitForGlobalCompletion()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func printVersionInfo() {
	status := "clean"
	if dirty == "true" {
		status = "dirty"
	}

	vInfo := VersionInfo{
		Program:     "ftg-affect",
		Version:     version,
		Commit:      commit,
		Built:       date,
		Status:      status,
		MethodKinds: strings.Join(clangast.MethodKinds(), ", "),
	}

	output, err := clicky.Format(vInfo)
	if err != nil {
		statusColor := color.New(color.FgGreen)
		if vInfo.Status != "clean" {
			statusColor = color.New(color.FgYellow)
		}
		fmt.Printf("ftg-affect version %s (commit: %s, built: %s, %s)\n",
			vInfo.Version, vInfo.Commit, vInfo.Built, statusColor.Sprint(vInfo.Status))
		return
	}
	fmt.Print(output)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ftg-affect.yaml)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false, "Show version information")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of a pretty report")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log per-API affect resolution at debug level")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file (optional, uses stdout if not specified)")
	rootCmd.PersistentFlags().BoolVarP(&compact, "compact", "c", false, "Compact output: fuzzer names only, no summary")

	clicky.BindAllFlags(rootCmd.PersistentFlags())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ftg-affect")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Infof("using config file: %s", viper.ConfigFileUsed())
	}

	clicky.Flags.UseFlags()
}

// resolveOutput opens outputFile if set, otherwise writes to stdout.
func resolveOutput() (*os.File, func(), error) {
	if outputFile == "" {
		return os.Stdout, func() {}, nil
	}

	absPath, err := filepath.Abs(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve output path: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
