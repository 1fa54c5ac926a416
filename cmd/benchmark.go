////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/elixxir/workqueue/benchmark"
	"gitlab.com/elixxir/workqueue/cmd/conf"
)

func init() {
	benchmarkCmd.Flags().IntP("workers", "w", 0,
		"Number of goroutines draining each dispenser (default NumCPU)")
	benchmarkCmd.Flags().IntP("iterations", "i", 100,
		"Number of times to repeat each scenario")
	benchmarkCmd.Flags().Uint64P("tickets", "t", 10000,
		"Number of tickets in the counter")
	benchmarkCmd.Flags().IntP("length", "n", 10000,
		"Length of the partitioned buffer")
	benchmarkCmd.Flags().IntP("step", "s", 3,
		"Number of elements per region")
	benchmarkCmd.Flags().StringP("strategy", "", "cas",
		"Partitioner strategy, cas or fetchadd")
	benchmarkCmd.Flags().StringP("report", "r", "",
		"File to write the YAML report to, stdout if unset")

	for _, flag := range []string{"iterations", "tickets", "length", "step",
		"strategy", "report"} {
		err := viper.BindPFlag("benchmark."+flag,
			benchmarkCmd.Flags().Lookup(flag))
		handleBindingError(err, flag)
	}

	rootCmd.AddCommand(benchmarkCmd)
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Stress the ticket counter and the chunk partitioner",
	Long: `Drain fresh dispensers from many goroutines, over and over, and
verify that every ticket and every region of the buffer was handed out
exactly once. A YAML report is written when all iterations pass.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Workers default to NumCPU, so only override when the flag is set
		if cmd.Flags().Changed("workers") {
			workers, _ := cmd.Flags().GetInt("workers")
			viper.Set("benchmark.workers", workers)
		}

		params, err := conf.NewParams(viper.GetViper())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stop := ReceiveExitSignal()
		go func() {
			select {
			case sig := <-stop:
				jww.WARN.Printf("Received %s, stopping benchmark", sig)
				cancel()
			case <-ctx.Done():
			}
		}()

		report, err := benchmark.Run(ctx, params.Benchmark.Config())
		if err != nil {
			return err
		}

		return writeReport(report, params.Benchmark.ReportPath)
	},
}

func writeReport(report *benchmark.Report, path string) error {
	out, err := report.YAML()
	if err != nil {
		return err
	}

	if path == "" {
		fmt.Print(string(out))
		return nil
	}

	if err = os.WriteFile(path, out, 0644); err != nil {
		return errors.Wrapf(err, "failed to write report to %s", path)
	}
	jww.INFO.Printf("Wrote benchmark report to %s", path)
	return nil
}
