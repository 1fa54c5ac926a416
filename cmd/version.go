////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SEMVER is the current version of workqueue.
const SEMVER = "1.0.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion() {
	fmt.Printf("Elixxir workqueue v%s\n", SEMVER)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of workqueue",
	Long:  `Print the version number of workqueue.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion()
	},
}
