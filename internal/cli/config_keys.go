package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avenka29/Hackathon-NCSU/internal/config"
)

// loadGlobalFile reads the global config file without project or
// environment overrides, so Save writes back only what the user set.
func loadGlobalFile() (*config.Config, error) {
	path, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get KEY",
		Short:     "Print one effective configuration value",
		Example:   `  scamflight config get service.base_url`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			cmd.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates the config set command. It edits the global file.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a value in the global configuration file",
		Example: `  scamflight config set service.base_url https://calls.example.com
  scamflight config set service.timeout 90s
  scamflight config set output.default_format json`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadGlobalFile()
			if err != nil {
				return err
			}
			if err = cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return err
			}
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every effective configuration value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			values := make(map[string]string, len(config.Keys()))
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				values[key] = value
			}

			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), values)
			}
			for _, key := range config.Keys() {
				cmd.Printf("%s = %s\n", key, values[key])
			}
			cmd.Printf("people = %d\n", len(cfg.People))
			return nil
		},
	}
}

func newConfigPeopleCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "people", Short: "Manage the trainee roster used by --person"}
	cmd.AddCommand(newPeopleListCmd(), newPeopleAddCmd(), newPeopleRemoveCmd())
	return cmd
}

func newPeopleListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			people := config.GetGlobalConfig().People
			if jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), people)
			}
			if len(people) == 0 {
				cmd.Println("No people configured. Add one with: scamflight config people add")
				return nil
			}
			for _, p := range people {
				line := fmt.Sprintf("%-12s %-24s %-16s", p.ID, p.Name, p.Phone)
				if p.Role != "" {
					line += " " + p.Role
				}
				cmd.Println(line)
			}
			return nil
		},
	}
}

func newPeopleAddCmd() *cobra.Command {
	var p config.Person

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a trainee to the global roster",
		Example: `  scamflight config people add --id alice --name "Alice Smith" --phone +15551230001 --role "Accounts payable"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadGlobalFile()
			if err != nil {
				return err
			}
			cfg.People = append(cfg.People, p)
			if err = cfg.Validate(); err != nil {
				return err
			}
			if err = cfg.Save(); err != nil {
				return err
			}
			cmd.Printf("Added %s (%s)\n", p.ID, p.Phone)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.ID, "id", "", "short id used with --person")
	cmd.Flags().StringVar(&p.Name, "name", "", "display name")
	cmd.Flags().StringVar(&p.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&p.Role, "role", "", "job role")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newPeopleRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a trainee from the global roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadGlobalFile()
			if err != nil {
				return err
			}
			if _, err = cfg.FindPerson(args[0]); err != nil {
				return err
			}
			kept := cfg.People[:0]
			for _, p := range cfg.People {
				if p.ID != args[0] {
					kept = append(kept, p)
				}
			}
			cfg.People = kept
			if err = cfg.Save(); err != nil {
				return err
			}
			cmd.Printf("Removed %s\n", args[0])
			return nil
		},
	}
}
