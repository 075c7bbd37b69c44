package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Edwardzzz-c/gotrak/internal/config"
	"github.com/Edwardzzz-c/gotrak/internal/server"
)

var RootCmd = &cobra.Command{
	Use:   "gotrak",
	Short: "control/data plane of the trakStar motion tracking device",
	Long:  "control/data plane of the trakStar motion tracking device",
}

func ServeCmdRunE(cmd *cobra.Command, args []string) error {
	server.NewMainApp(cmd, args).PrepareRun().Run()
	return nil
}

func ServeCmdFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "default configuration path")
	cmd.Flags().Int64P("port", "p", config.DefaultAPIPort, "port that the api server listens on")
	cmd.Flags().StringP("interface", "i", config.DefaultAPIInterface, "interface that the api server listens on, default to 0.0.0.0")
	cmd.Flags().Bool("debug", false, "toggle debug logging")
}

var ServeCmd = &cobra.Command{
	Use: "serve",
	SuggestFor: []string{
		"ru", "ser",
	},
	Short: "serve starts the tracker server using predefined configs.",
	Long: `serve starts the tracker server using predefined configs, by the following order:
1. path specified in --config flag
2. path defined GOTRAK_CONFIG environment variable
3. default location $HOME/.config/gotrak/config.yaml, /etc/gotrak/config.yaml, current directory
The parameters in the configuration file will be overwritten by the following order:
1. command line arguments
2. environment variables
`,
	Example: `  gotrak serve --config=/path/to/config`,
	RunE:    ServeCmdRunE,
}

func InitCmdFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("print", false, "print config to stdout")
	cmd.Flags().BoolP("yes", "y", false, "overwrite")
	cmd.Flags().StringP("output", "o", config.DefaultConfig, "specify output directory")
}

var InitCmd = &cobra.Command{
	Use: "init",
	SuggestFor: []string{
		"ini", "in",
	},
	Short: "init create a configuration template",
	Long: `init create a configuration template.
The configuration file can be used to launch the tracker server.
If --print flag is present, the configuration will be printed to stdout.
If --output / -o flag is present, the configuration will be saved to the path specified
Otherwise init will output configuration file to $HOME/.config/gotrak/config.yaml
If --yes / -y flag is present, the configuration will be overwrite without confirmation
`,
	Example: `  gotrak init --print
  gotrak init --output /path/to/config.yaml
  gotrak init -o /path/to/config.yaml -y`,
	RunE: config.InitCfg,
}

var ProbeCmd = &cobra.Command{
	Use: "probe",
	SuggestFor: []string{
		"pro", "pr", "prob",
	},
	Short: "probe the compatible devices",
	Long: `probe the compatible devices.
The probe command will scan the serial ports for responsive hardware and print the result to stdout.
Warning: only devices answering at 115200 baud can be detected.
`,
	Example: `  gotrak probe`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = server.NewMainApp(cmd, args).PrepareRun().ProbeSensor()
	},
}

func getRootCmd() *cobra.Command {

	ServeCmdFlags(ServeCmd)
	RootCmd.AddCommand(ServeCmd)

	InitCmdFlags(InitCmd)
	RootCmd.AddCommand(InitCmd)

	RootCmd.AddCommand(ProbeCmd)

	return RootCmd
}

func Execute() {
	rootCmd := getRootCmd()
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
