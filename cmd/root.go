////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package cmd initializes the CLI and config parsers as well as the logger.
package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/elixxir/workqueue/cmd/conf"
)

var cfgFile string
var verbose bool
var logPath string

// rootCmd represents the base command when called without any sub-commands
var rootCmd = &cobra.Command{
	Use:   "workqueue",
	Short: "Stress tests lock-free work dispensers",
	Long: `workqueue exercises the lock-free ticket counter and chunk
partitioner from many goroutines and verifies that every unit of work is
handed out exactly once.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		jww.ERROR.Printf("Exiting with error: %s", err.Error())
		os.Exit(1)
	}
}

// init is the initialization function for Cobra which defines commands
// and flags.
func init() {
	cobra.OnInitialize(initConfig, initLog)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default is $HOME/.elixxir/workqueue.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose mode for debugging")
	rootCmd.PersistentFlags().StringVarP(&logPath, "logPath", "l", "",
		"File to write the log to, stdout only if unset")

	err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup(
		"verbose"))
	handleBindingError(err, "verbose")

	err = viper.BindPFlag("logPath", rootCmd.PersistentFlags().Lookup(
		"logPath"))
	handleBindingError(err, "logPath")
}

func handleBindingError(err error, flag string) {
	if err != nil {
		jww.FATAL.Panicf("Error on binding flag \"%s\":%+v", flag, err)
	}
}

// initConfig reads in config file and ENV variables if set. A missing
// default config file is not an error, every setting has a default.
func initConfig() {
	explicit := cfgFile != ""

	//Use default config location if none is passed
	if !explicit {
		home, err := homedir.Dir()
		if err != nil {
			jww.ERROR.Println(err)
			os.Exit(1)
		}
		cfgFile = home + "/.elixxir/workqueue.yaml"
	}

	viper.AutomaticEnv() // read in environment variables that match

	if _, err := os.Stat(cfgFile); err != nil {
		if explicit {
			jww.FATAL.Panicf("Invalid config file (%s): %s", cfgFile,
				err.Error())
		}
		jww.DEBUG.Printf("No config file at %s, using defaults", cfgFile)
		return
	}

	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		jww.FATAL.Panicf("Unable to read config file (%s): %s", cfgFile,
			err.Error())
	}
}

// initLog initializes logging thresholds and the log path.
func initLog() {
	logging := conf.NewLogging(viper.GetViper())

	// If verbose flag set then log more info for debugging
	if logging.Verbose {
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetStdoutThreshold(jww.LevelDebug)
	} else {
		jww.SetLogThreshold(jww.LevelInfo)
		jww.SetStdoutThreshold(jww.LevelInfo)
	}

	if logging.LogPath != "" {
		// Create log file, overwrites if existing
		logFile, err := os.Create(logging.LogPath)
		if err != nil {
			fmt.Printf("Invalid or missing log path %s, "+
				"logging to stdout only.\n", logging.LogPath)
		} else {
			jww.SetLogOutput(logFile)
		}
	}
}
