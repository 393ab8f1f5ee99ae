package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/doctor"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/rileyhilliard/netuse/internal/ui"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Interfaces     []string // Pre-specified wireless interfaces
	LeaseFiles     []string // Pre-specified lease databases
	Color          string   // Pre-specified output.color
	Global         bool     // Write ~/.config/netuse/config.yaml instead of ./.netuse.yaml
	Overwrite      bool     // Overwrite existing config without asking
	NonInteractive bool     // Skip prompts, use defaults

	// sysDir is scanned for wireless interfaces. Replaced in tests.
	sysDir string
}

var initOpts InitOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .netuse.yaml config file",
	Long: `Create a config file with the wireless interfaces found on this machine
and the usual dhcpd lease location. Prompts for each value unless
--non-interactive is given.

Examples:
  netuse init
  netuse init --non-interactive -i wlan0 -l /var/lib/dhcp/dhcpd.leases
  netuse init --global --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Init(initOpts)
	},
}

func init() {
	initCmd.Flags().StringSliceVarP(&initOpts.Interfaces, "interface", "i", nil, "wireless interface (repeatable)")
	initCmd.Flags().StringSliceVarP(&initOpts.LeaseFiles, "lease-file", "l", nil, "dhcpd lease file (repeatable)")
	initCmd.Flags().StringVar(&initOpts.Color, "color", "", "color mode: auto, always or never")
	initCmd.Flags().BoolVar(&initOpts.Global, "global", false, "write the global config instead of ./.netuse.yaml")
	initCmd.Flags().BoolVar(&initOpts.Overwrite, "force", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and use flags/defaults")
	rootCmd.AddCommand(initCmd)
}

// Init writes a new config file.
func Init(opts InitOptions) error {
	target, err := initTarget(opts.Global)
	if err != nil {
		return err
	}

	proceed, err := checkExistingConfig(target, opts)
	if err != nil || !proceed {
		return err
	}

	cfg := initDefaults(opts)

	if !opts.NonInteractive {
		if err := runInitForm(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(target, cfg); err != nil {
		return err
	}

	fmt.Printf("%s Created %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), target)
	fmt.Printf("  %s\n", ui.MutedStyle().Render("Run 'netuse doctor' to check the sources, then 'netuse' to start."))
	return nil
}

func initTarget(global bool) (string, error) {
	if !global {
		return config.ConfigFileName, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Write a project config instead by dropping --global")
	}
	return filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile), nil
}

// checkExistingConfig reports whether Init should go ahead and write target.
func checkExistingConfig(target string, opts InitOptions) (bool, error) {
	if _, err := os.Stat(target); err != nil || opts.Overwrite {
		return true, nil
	}

	if opts.NonInteractive {
		return false, errors.New(errors.ErrConfig,
			fmt.Sprintf("There's already a config file at %s", target),
			"Use --force to overwrite")
	}

	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", target)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}

	if !overwrite {
		fmt.Println("Cancelled.")
	}
	return overwrite, nil
}

// initDefaults starts from the stock config, detected wireless interfaces,
// then any values given as flags.
func initDefaults(opts InitOptions) *config.Config {
	cfg := config.DefaultConfig()

	sysDir := opts.sysDir
	if sysDir == "" {
		sysDir = doctor.SysClassNet
	}
	if detected := doctor.WirelessInterfaces(sysDir); len(detected) > 0 {
		cfg.Interfaces = detected
	}

	if len(opts.Interfaces) > 0 {
		cfg.Interfaces = opts.Interfaces
	}
	if len(opts.LeaseFiles) > 0 {
		cfg.LeaseFiles = opts.LeaseFiles
	}
	if opts.Color != "" {
		cfg.Output.Color = opts.Color
	}
	return cfg
}

func runInitForm(cfg *config.Config) error {
	interfaces := strings.Join(cfg.Interfaces, ", ")
	leaseFiles := strings.Join(cfg.LeaseFiles, ", ")
	color := cfg.Output.Color
	showInactive := cfg.Leases.ShowInactive

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Wireless interfaces").
				Description("Comma-separated; each is passed to 'iw dev <name> station dump'").
				Placeholder("wlan0, wlan1").
				Value(&interfaces).
				Validate(func(s string) error {
					if len(splitList(s)) == 0 {
						return fmt.Errorf("at least one interface is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("DHCP lease files").
				Description("Comma-separated dhcpd.leases paths; later files win on duplicates").
				Placeholder("/var/lib/dhcp/dhcpd.leases").
				Value(&leaseFiles),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Colors").
				Options(
					huh.NewOption("Auto-detect", config.ColorAuto),
					huh.NewOption("Always", config.ColorAlways),
					huh.NewOption("Never", config.ColorNever),
				).
				Value(&color),
			huh.NewConfirm().
				Title("Show inactive leases?").
				Description("Leases whose host is not in the neighbor table").
				Value(&showInactive),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}

	cfg.Interfaces = splitList(interfaces)
	cfg.LeaseFiles = splitList(leaseFiles)
	cfg.Output.Color = color
	cfg.Leases.ShowInactive = showInactive
	return nil
}

// splitList splits a comma or whitespace separated list, dropping blanks.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}
