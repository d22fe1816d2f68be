package internal

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/ngerakines/aurora/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	cfgFile string
	envFile string
)

var RootCmd = &cobra.Command{
	Use:           "aurora",
	Short:         "aurora controls a nanoleaf light panel controller over its local API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of aurora",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("aurora v1.0.0 -- HEAD")
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./aurora.yaml)")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load NANOLEAF_* variables from a .env file")
	RootCmd.PersistentFlags().String("ip", "", "controller address (env NANOLEAF_IP)")
	RootCmd.PersistentFlags().String("token", "", "auth token (env NANOLEAF_AUTH_TOKEN)")
	RootCmd.PersistentFlags().Duration("timeout", 0, "request timeout, 0 for none")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().String("log-file", "", "write logs to a rotating file")

	viper.BindPFlag("ip", RootCmd.PersistentFlags().Lookup("ip"))
	viper.BindPFlag("auth_token", RootCmd.PersistentFlags().Lookup("token"))
	viper.BindPFlag("timeout", RootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log.file", RootCmd.PersistentFlags().Lookup("log-file"))

	viper.SetDefault("log.maxage", 7)

	viper.AutomaticEnv()
	viper.SetEnvPrefix(client.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if envFile != "" {
		if err := client.LoadEnvFile(envFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(path.Join(home, ".aurora"))
		viper.AddConfigPath("/etc/aurora/")
		viper.SetConfigName("aurora")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Println("Can't read config:", err)
		}
	}
}

func initLogging() error {
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if file := viper.GetString("log.file"); file != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename: file,
			MaxAge:   viper.GetInt("log.maxage"),
		})
	}
	return nil
}

func newClient() (*client.Aurora, error) {
	cfg := client.Config{
		Address: viper.GetString("ip"),
		Token:   viper.GetString("auth_token"),
		Timeout: viper.GetDuration("timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return client.New(cfg), nil
}

// withClient adapts a command body that needs a connected client.
func withClient(fn func(ctx context.Context, a *client.Aurora, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newClient()
		if err != nil {
			return err
		}
		return fn(cmd.Context(), a, args)
	}
}
